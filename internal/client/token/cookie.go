package token

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zoowayss/cursorpool/internal/common"
)

// writeCookieFile writes a single-cookie Netscape cookie file. The format is
// the curl "cookie jar" layout: one tab-separated line of
// domain, include-subdomains, path, secure, expiry, name, value.
func writeCookieFile(path, domain, value string, expires time.Time) error {
	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n")
	fmt.Fprintf(&b, "%s\tFALSE\t/\tFALSE\t%d\t%s\t%s\n",
		domain, expires.Unix(), common.TokenCookieName, value)
	return os.WriteFile(path, []byte(b.String()), 0o600)
}

// readCookieFile returns the mirrored token value, or "" when the file is
// absent or holds no token cookie. Application code never calls this; it
// exists so tests can verify the mirror.
func readCookieFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) == 7 && fields[5] == common.TokenCookieName {
			return fields[6], nil
		}
	}
	return "", scanner.Err()
}

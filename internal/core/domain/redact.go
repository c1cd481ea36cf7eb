package domain

import "strings"

// RedactEmail masks the local part of an email for log output.
// "john.doe@example.com" becomes "j***@example.com".
func RedactEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// RedactIP masks the host portion of an address for log output.
// IPv4 keeps the first two octets; anything else keeps a short prefix.
func RedactIP(ip string) string {
	if ip == "" {
		return ""
	}
	if parts := strings.Split(ip, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".x.x"
	}
	if len(ip) > 6 {
		return ip[:6] + "***"
	}
	return "***"
}

// RedactCard masks a card identity for log output, keeping bin and last4.
func RedactCard(bin, last4 string) string {
	if bin == "" && last4 == "" {
		return ""
	}
	return bin + "******" + last4
}

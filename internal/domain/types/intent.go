package types

import (
	"net/url"
	"strconv"
	"strings"
)

// IntentKind is the URI scheme of an outbound intent.
type IntentKind string

const (
	IntentCall IntentKind = "tel"
	IntentSMS  IntentKind = "sms"
)

// Intent is an outbound request for the handset to open a URI.
type Intent struct {
	Kind   IntentKind `json:"kind"`
	Number string     `json:"number"`
	URI    string     `json:"uri"`
}

// CallIntent builds tel:<number>.
func CallIntent(number string) Intent {
	return Intent{Kind: IntentCall, Number: number, URI: "tel:" + number}
}

// SMSIntent builds sms:<number>?body=<text> with the body percent-encoded.
func SMSIntent(number, body string) Intent {
	enc := strings.ReplaceAll(url.QueryEscape(body), "+", "%20")
	return Intent{Kind: IntentSMS, Number: number, URI: "sms:" + number + "?body=" + enc}
}

// MapsLink returns https://maps.google.com/?q=<lat>,<lng>.
func MapsLink(c Coordinates) string {
	return "https://maps.google.com/?q=" +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

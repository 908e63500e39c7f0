package html

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nethtml "golang.org/x/net/html"
)

// parse returns the root node of an email body, failing the test if the
// body isn't HTML we can read.
func parse(t *testing.T, body string) *nethtml.Node {
	t.Helper()
	n, err := nethtml.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return n
}

// textOf concatenates the text nodes beneath n.
func textOf(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(c *nethtml.Node) {
		if c.Type == nethtml.TextNode {
			b.WriteString(c.Data)
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// texts returns the text of every node that matches sel.
func texts(t *testing.T, root *nethtml.Node, sel string) []string {
	t.Helper()
	var r []string
	for _, n := range cascadia.MustCompile(sel).MatchAll(root) {
		r = append(r, textOf(n))
	}
	return r
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestBookingConfirmation(t *testing.T) {
	amt, err := FormatAmount(5000000)
	require.NoError(t, err)

	e, err := BookingConfirmation(Booking{
		Name:      "Ada",
		Email:     "ada@x.com",
		Phone:     "0800",
		SpaceName: "Suite 4B",
		BookingID: "BK123",
		Amount:    amt,
	})
	require.NoError(t, err)

	assert.Equal(t, "Booking Confirmation - Suite 4B", e.Subject)

	root := parse(t, e.HTML)
	assert.Equal(t, []string{"Booking Confirmed!"}, texts(t, root, ".header h1"))
	assert.Equal(t, []string{
		"Space: Suite 4B",
		"Booking ID: BK123",
		"Amount: ₦5,000,000",
		"Email: ada@x.com",
		"Phone: 0800",
	}, texts(t, root, ".details p"))
	assert.Contains(t, texts(t, root, ".content > p"), "Dear Ada,")

	a := cascadia.MustCompile("a.button").MatchFirst(root)
	require.NotNil(t, a)
	assert.Equal(t, "https://fombinatower.vercel.app/booking/BK123", attr(a, "href"))
	assert.Equal(t, "View Booking", textOf(a))

	assert.Equal(t, []string{
		"© 2025 Fombina Tower. All rights reserved.",
		"Plot 1839, Kur Muhd Avenue, CBD, FCT Abuja, Nigeria",
		"Phone: 09028132452, 08163686368",
	}, texts(t, root, ".footer p"))
}

func TestContactNotification(t *testing.T) {
	testCases := []struct {
		description     string
		input           Contact
		expectedDetails []string
	}{
		{
			description: "every field given",
			input: Contact{
				Name:    "Bo",
				Email:   "bo@y.com",
				Phone:   "0803",
				Subject: "Leasing",
				Message: "Hi",
			},
			expectedDetails: []string{
				"Name: Bo",
				"Email: bo@y.com",
				"Phone: 0803",
				"Subject: Leasing",
				"Message:",
				"Hi",
			},
		},
		{
			description: "optional fields left out",
			input: Contact{
				Name:    "Bo",
				Email:   "bo@y.com",
				Message: "Hi",
			},
			expectedDetails: []string{
				"Name: Bo",
				"Email: bo@y.com",
				"Phone: N/A",
				"Subject: N/A",
				"Message:",
				"Hi",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			e, err := ContactNotification(tc.input)
			require.NoError(t, err)
			assert.Equal(t, "New Contact Form Submission - Bo", e.Subject)

			root := parse(t, e.HTML)
			assert.Equal(t, []string{"New Contact Form Submission"}, texts(t, root, "h2"))
			assert.Equal(t, tc.expectedDetails, texts(t, root, "div > div > p"))
		})
	}
}

func TestContactNotificationEscapesValues(t *testing.T) {
	e, err := ContactNotification(Contact{
		Name:    "Tom & Jerry",
		Email:   "tj@y.com",
		Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	// Subjects are plain text and aren't escaped
	assert.Equal(t, "New Contact Form Submission - Tom & Jerry", e.Subject)
	assert.NotContains(t, e.HTML, "<script>")
	assert.Contains(t, e.HTML, "&lt;script&gt;")

	root := parse(t, e.HTML)
	assert.Empty(t, cascadia.MustCompile("script").MatchAll(root))
	assert.Contains(t, texts(t, root, "div > div > p"), "<script>alert(1)</script>")
	assert.Contains(t, texts(t, root, "div > div > p"), "Name: Tom & Jerry")
}

func TestWelcomeEmail(t *testing.T) {
	e, err := WelcomeEmail(Welcome{Name: "Chi"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Fombina Tower", e.Subject)

	root := parse(t, e.HTML)
	assert.Equal(t, []string{"Welcome to Fombina Tower"}, texts(t, root, ".header h1"))
	assert.Equal(t, []string{"Where Luxury Meets Excellence"}, texts(t, root, ".header p"))
	assert.Contains(t, texts(t, root, ".content > p"), "Dear Chi,")
	assert.Len(t, texts(t, root, ".content li"), 4)

	a := cascadia.MustCompile("a.button").MatchFirst(root)
	require.NotNil(t, a)
	assert.Equal(t, "https://fombinatower.vercel.app/spaces", attr(a, "href"))
	assert.Equal(t, "Explore Spaces", textOf(a))
}

func TestPasswordResetEmail(t *testing.T) {
	testCases := []struct {
		description string
		token       string
		expectedURL string
	}{
		{
			description: "url-safe token",
			token:       "tok-456",
			expectedURL: "https://fombinatower.vercel.app/reset-password?token=tok-456",
		},
		{
			description: "token with reserved characters",
			token:       "a+b/c=&d",
			expectedURL: "https://fombinatower.vercel.app/reset-password?token=a%2Bb%2Fc%3D%26d",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pr := PasswordReset{Name: "Dee", Token: tc.token}
			assert.Equal(t, tc.expectedURL, pr.ResetURL())

			e, err := PasswordResetEmail(pr)
			require.NoError(t, err)
			assert.Equal(t, "Reset Your Fombina Tower Password", e.Subject)

			root := parse(t, e.HTML)
			a := cascadia.MustCompile("a.button").MatchFirst(root)
			require.NotNil(t, a)
			assert.Equal(t, tc.expectedURL, attr(a, "href"))
			assert.Equal(t, []string{tc.expectedURL}, texts(t, root, ".reset-link"))
			assert.Contains(t, textOf(cascadia.MustCompile(".warning").MatchFirst(root)), "expire in 1 hour")

			// the reset email leaves the phone numbers out of its footer
			assert.Equal(t, []string{
				"© 2025 Fombina Tower. All rights reserved.",
				"Plot 1839, Kur Muhd Avenue, CBD, FCT Abuja, Nigeria",
			}, texts(t, root, ".footer p"))
		})
	}
}

func TestApplicationConfirmation(t *testing.T) {
	e, err := ApplicationConfirmation(Application{
		Name:          "Eve",
		ApplicationID: "APP9",
		FloorLevel:    "5",
		PaymentMode:   "Outright",
	})
	require.NoError(t, err)

	assert.Equal(t, "Application Received - Fombina Tower", e.Subject)

	root := parse(t, e.HTML)
	assert.Equal(t, []string{"Application Received!"}, texts(t, root, ".header h1"))
	assert.Equal(t, []string{
		"Application ID: APP9",
		"Preferred Floor Level: 5",
		"Payment Mode: Outright",
		"Space Size: 49 Square Meters",
		"Total Price: ₦360,000,000",
		"Initial Deposit (40%): ₦144,000,000",
	}, texts(t, root, ".details p"))

	steps := texts(t, root, ".content ol li")
	require.Len(t, steps, 5)
	assert.Contains(t, steps[0], "₦100,000")
	assert.Contains(t, steps[2], "3-5 business days")
	assert.Len(t, texts(t, root, ".content ul li"), 3)

	assert.Contains(t, texts(t, root, ".footer p"), "Developed by: Eagle Track Local Content LTD")
	assert.Contains(t, texts(t, root, ".footer p"), "Marketed by: Uloaku Ekwuribe & Partners")
}

func TestApplicationConfirmationFixedLinesIgnoreInput(t *testing.T) {
	e, err := ApplicationConfirmation(Application{Name: "Eve"})
	require.NoError(t, err)

	details := texts(t, parse(t, e.HTML), ".details p")
	assert.Contains(t, details, "Space Size: 49 Square Meters")
	assert.Contains(t, details, "Total Price: ₦360,000,000")
	assert.Contains(t, details, "Initial Deposit (40%): ₦144,000,000")
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		description   string
		input         interface{}
		expected      string
		shouldBeError bool
	}{
		{description: "int", input: 5000000, expected: "5,000,000"},
		{description: "small int", input: 999, expected: "999"},
		{description: "zero", input: 0, expected: "0"},
		{description: "negative int", input: -2500, expected: "-2,500"},
		{description: "int64", input: int64(360000000), expected: "360,000,000"},
		{description: "uint64", input: uint64(144000000), expected: "144,000,000"},
		{description: "whole float", input: 5000000.0, expected: "5,000,000"},
		{description: "fractional float", input: 1234.5, expected: "1,234.5"},
		{description: "negative float", input: -1234.25, expected: "-1,234.25"},
		{description: "numeric string", input: "360000000", expected: "360,000,000"},
		{description: "padded numeric string", input: " 100000 ", expected: "100,000"},
		{description: "decimal string", input: "2500.75", expected: "2,500.75"},
		{description: "json number", input: json.Number("144000000"), expected: "144,000,000"},
		{description: "non-numeric string", input: "lots", shouldBeError: true},
		{description: "float at 2^64", input: math.Pow(2, 64), expected: "18,446,744,073,709,551,616"},
		{description: "float past 2^64", input: 1e20, expected: "100,000,000,000,000,000,000"},
		{description: "negative float past 2^64", input: -1e20, expected: "-100,000,000,000,000,000,000"},
		{description: "exponent string past 2^64", input: "1e21", expected: "1,000,000,000,000,000,000,000"},
		{description: "NaN", input: math.NaN(), shouldBeError: true},
		{description: "infinity", input: math.Inf(1), shouldBeError: true},
		{description: "unsupported type", input: []int{1}, shouldBeError: true},
		{description: "nil", input: nil, shouldBeError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s, err := FormatAmount(tc.input)
			if (err != nil) != tc.shouldBeError {
				t.Fatalf(
					"%v: unexpected error status--wanted %v but got %v with error %v",
					tc.description,
					tc.shouldBeError,
					err != nil,
					err,
				)
			}
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestGroupThousands(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "1", expected: "1"},
		{input: "123", expected: "123"},
		{input: "1234", expected: "1,234"},
		{input: "123456", expected: "123,456"},
		{input: "1234567", expected: "1,234,567"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, groupThousands(tc.input))
		})
	}
}

package smtptest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	testCases := []struct {
		description   string
		raw           string
		expectedTypes []string
		expectedBody  string
		shouldBeError bool
	}{
		{
			description: "multipart alternative with quoted-printable parts",
			raw: "From: Sender <sender@example.com>\r\n" +
				"To: you@example.com\r\n" +
				"Subject: =?utf-8?q?Caf=C3=A9_news?=\r\n" +
				"MIME-Version: 1.0\r\n" +
				"Content-Type: multipart/alternative; boundary=xyz\r\n" +
				"\r\n" +
				"--xyz\r\n" +
				"Content-Type: text/plain; charset=utf-8\r\n" +
				"Content-Transfer-Encoding: quoted-printable\r\n" +
				"\r\n" +
				"plain body\r\n" +
				"--xyz\r\n" +
				"Content-Type: text/html; charset=utf-8\r\n" +
				"Content-Transfer-Encoding: quoted-printable\r\n" +
				"\r\n" +
				"<p class=3D\"x\">html body</p>\r\n" +
				"--xyz--\r\n",
			expectedTypes: []string{"text/plain", "text/html"},
			expectedBody:  `<p class="x">html body</p>`,
		},
		{
			description: "single part",
			raw: "Subject: hi\r\n" +
				"Content-Type: text/html\r\n" +
				"\r\n" +
				"<p>hi</p>",
			expectedTypes: []string{"text/html"},
			expectedBody:  "<p>hi</p>",
		},
		{
			description:   "no content type",
			raw:           "Subject: hi\r\n\r\nbody",
			shouldBeError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pe, err := ParseEmail(tc.raw)
			if tc.shouldBeError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var types []string
			for _, p := range pe.Parts {
				types = append(types, p.MediaType)
			}
			assert.Equal(t, tc.expectedTypes, types)

			h, ok := pe.Part("text/html")
			require.True(t, ok)
			assert.Equal(t, tc.expectedBody, h.Body)
		})
	}
}

func TestParseEmailDecodesSubject(t *testing.T) {
	pe, err := ParseEmail("Subject: =?utf-8?q?Caf=C3=A9_news?=\r\nContent-Type: text/plain\r\n\r\nx")
	require.NoError(t, err)
	assert.Equal(t, "Café news", pe.Subject)
}

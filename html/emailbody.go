package html

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// SiteURL is the public web app that emails link back to.
const SiteURL = "https://fombinatower.vercel.app"

// placeholder stands in for optional contact form fields the visitor left
// out.
const placeholder = "N/A"

// Email is a rendered message, ready to hand to a sender.
type Email struct {
	Subject string
	HTML    string
}

// Booking populates the booking confirmation. Amount must already be
// formatted, e.g., with FormatAmount.
type Booking struct {
	Name      string
	Email     string
	Phone     string
	SpaceName string
	BookingID string
	Amount    string
}

// Contact populates the contact form notification sent to the
// administrator. Phone and Subject are optional.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Welcome populates the welcome email for a new account.
type Welcome struct {
	Name string
}

// PasswordReset populates the password reset email.
type PasswordReset struct {
	Name  string
	Token string
}

// ResetURL is the page that redeems the reset token.
func (pr PasswordReset) ResetURL() string {
	return SiteURL + "/reset-password?token=" + url.QueryEscape(pr.Token)
}

// Application populates the application confirmation. The unit size and
// prices are fixed and aren't part of the data.
type Application struct {
	Name          string
	ApplicationID string
	FloorLevel    string
	PaymentMode   string
}

// Shared by every branded email. Pass true to include the phone numbers.
const footerHTML = `{{ define "footer" }}
            <div class="footer">
                <p>© 2025 Fombina Tower. All rights reserved.</p>
                <p>Plot 1839, Kur Muhd Avenue, CBD, FCT Abuja, Nigeria</p>
                {{- if . }}
                <p>Phone: 09028132452, 08163686368</p>
                {{- end }}
            </div>
{{- end }}`

const bookingHTML = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1a1a1a 0%, #2d2d2d 100%); color: white; padding: 30px; text-align: center; }
        .content { background: #f9f9f9; padding: 30px; }
        .details { background: white; padding: 20px; margin: 20px 0; border-left: 4px solid #d4a574; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
        .button { display: inline-block; padding: 12px 30px; background: #d4a574; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Booking Confirmed!</h1>
            <p>Thank you for choosing Fombina Tower</p>
        </div>
        <div class="content">
            <p>Dear {{ .Name }},</p>
            <p>Your booking has been confirmed. Here are your booking details:</p>

            <div class="details">
                <h3>Booking Details</h3>
                <p><strong>Space:</strong> {{ .SpaceName }}</p>
                <p><strong>Booking ID:</strong> {{ .BookingID }}</p>
                <p><strong>Amount:</strong> ₦{{ .Amount }}</p>
                <p><strong>Email:</strong> {{ .Email }}</p>
                <p><strong>Phone:</strong> {{ .Phone }}</p>
            </div>

            <p>Our team will contact you within 24 hours to finalize the details.</p>

            <center>
                <a href="https://fombinatower.vercel.app/booking/{{ .BookingID }}" class="button">View Booking</a>
            </center>
        </div>
        {{ template "footer" true }}
    </div>
</body>
</html>
`

const contactHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>New Contact Form Submission</h2>
        <div style="background: #f9f9f9; padding: 20px; margin: 20px 0;">
            <p><strong>Name:</strong> {{ .Name }}</p>
            <p><strong>Email:</strong> {{ .Email }}</p>
            <p><strong>Phone:</strong> {{ .Phone }}</p>
            <p><strong>Subject:</strong> {{ .Subject }}</p>
            <p><strong>Message:</strong></p>
            <p>{{ .Message }}</p>
        </div>
    </div>
</body>
</html>
`

const welcomeHTML = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1a1a1a 0%, #2d2d2d 100%); color: white; padding: 40px; text-align: center; }
        .content { background: #f9f9f9; padding: 30px; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
        .button { display: inline-block; padding: 12px 30px; background: #d4a574; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Fombina Tower</h1>
            <p>Where Luxury Meets Excellence</p>
        </div>
        <div class="content">
            <p>Dear {{ .Name }},</p>
            <p>Thank you for joining Fombina Tower. We're excited to have you as part of our exclusive community.</p>
            <p>Your account has been successfully created. You can now:</p>
            <ul>
                <li>Browse available premium office and retail spaces</li>
                <li>Book spaces with secure online payments</li>
                <li>Track your bookings and transactions</li>
                <li>Stay updated on construction progress</li>
            </ul>
            <center>
                <a href="https://fombinatower.vercel.app/spaces" class="button">Explore Spaces</a>
            </center>
            <p>If you have any questions, feel free to contact our team.</p>
        </div>
        {{ template "footer" true }}
    </div>
</body>
</html>
`

const passwordResetHTML = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1a1a1a 0%, #2d2d2d 100%); color: white; padding: 40px; text-align: center; }
        .content { background: #f9f9f9; padding: 30px; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
        .button { display: inline-block; padding: 12px 30px; background: #d4a574; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Request</h1>
        </div>
        <div class="content">
            <p>Dear {{ .Name }},</p>
            <p>We received a request to reset your password for your Fombina Tower account.</p>
            <p>Click the button below to reset your password:</p>
            <center>
                <a href="{{ .ResetURL }}" class="button">Reset Password</a>
            </center>
            <p>Or copy and paste this link into your browser:</p>
            <p class="reset-link" style="word-break: break-all; color: #666;">{{ .ResetURL }}</p>
            <div class="warning">
                <strong>Security Notice:</strong> This link will expire in 1 hour. If you didn't request this password reset, please ignore this email or contact support if you have concerns.
            </div>
        </div>
        {{ template "footer" false }}
    </div>
</body>
</html>
`

const applicationHTML = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1a1a1a 0%, #2d2d2d 100%); color: white; padding: 40px; text-align: center; }
        .content { background: #f9f9f9; padding: 30px; }
        .details { background: white; padding: 20px; margin: 20px 0; border-left: 4px solid #d4a574; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
        .highlight { background: #d4a574; color: white; padding: 15px; text-align: center; border-radius: 5px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Application Received!</h1>
            <p>Thank you for your interest in Fombina Tower</p>
        </div>
        <div class="content">
            <p>Dear {{ .Name }},</p>
            <p>We have successfully received your application for a premium space at Fombina Tower.</p>

            <div class="details">
                <h3>Application Summary</h3>
                <p><strong>Application ID:</strong> {{ .ApplicationID }}</p>
                <p><strong>Preferred Floor Level:</strong> {{ .FloorLevel }}</p>
                <p><strong>Payment Mode:</strong> {{ .PaymentMode }}</p>
                <p><strong>Space Size:</strong> 49 Square Meters</p>
                <p><strong>Total Price:</strong> ₦360,000,000</p>
                <p><strong>Initial Deposit (40%):</strong> ₦144,000,000</p>
            </div>

            <div class="highlight">
                <h3 style="margin: 0;">Next Steps</h3>
            </div>

            <ol>
                <li><strong>Application Fee Payment:</strong> Pay the non-refundable application fee of ₦100,000</li>
                <li><strong>Document Verification:</strong> Our team will review your submitted documents</li>
                <li><strong>Letter of Offer:</strong> You will receive a Letter of Offer within 3-5 business days</li>
                <li><strong>Initial Deposit:</strong> Pay the 40% initial deposit as per the Letter of Offer</li>
                <li><strong>Letter of Allocation:</strong> Receive your Letter of Allocation after full payment</li>
            </ol>

            <p><strong>Important:</strong> Please ensure you have the following documents ready:</p>
            <ul>
                <li>Valid means of identification (as specified in your application)</li>
                <li>Recent passport photographs (applicant and next of kin)</li>
                <li>Proof of source of funds</li>
            </ul>

            <p>Our team will contact you within 24-48 hours via email or phone to guide you through the next steps.</p>

            <div style="background: #e8f4f8; padding: 15px; border-radius: 5px; margin: 20px 0;">
                <p style="margin: 0;"><strong>Contact Us:</strong></p>
                <p style="margin: 5px 0;">📍 Plot 1839, Kur Muhd Avenue, CBD, FCT Abuja</p>
                <p style="margin: 5px 0;">📞 09028132452, 08163686368</p>
                <p style="margin: 5px 0;">✉️ info@fombinatower.com</p>
            </div>
        </div>
        <div class="footer">
            <p><strong>Developed by:</strong> Eagle Track Local Content LTD</p>
            <p><strong>Marketed by:</strong> Uloaku Ekwuribe &amp; Partners</p>
            <p style="margin-top: 15px;">© 2025 Fombina Tower. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

// The template text is constant, so a parse failure is a programming error
var (
	bookingTmpl       = mustParse("booking", bookingHTML)
	contactTmpl       = mustParse("contact", contactHTML)
	welcomeTmpl       = mustParse("welcome", welcomeHTML)
	passwordResetTmpl = mustParse("password-reset", passwordResetHTML)
	applicationTmpl   = mustParse("application", applicationHTML)
)

func mustParse(name, body string) *template.Template {
	return template.Must(template.Must(template.New(name).Parse(footerHTML)).Parse(body))
}

// populate executes tmpl with data.
func populate(tmpl *template.Template, data interface{}) (string, error) {
	var str strings.Builder
	if err := tmpl.Execute(&str, data); err != nil {
		return "", fmt.Errorf("can't populate the %v template: %w", tmpl.Name(), err)
	}
	return str.String(), nil
}

// BookingConfirmation renders the email confirming a space booking.
func BookingConfirmation(b Booking) (Email, error) {
	h, err := populate(bookingTmpl, b)
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: "Booking Confirmation - " + b.SpaceName,
		HTML:    h,
	}, nil
}

// ContactNotification renders the administrator's copy of a contact form
// submission. A blank phone or subject is shown as "N/A".
func ContactNotification(c Contact) (Email, error) {
	if c.Phone == "" {
		c.Phone = placeholder
	}
	if c.Subject == "" {
		c.Subject = placeholder
	}

	h, err := populate(contactTmpl, c)
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: "New Contact Form Submission - " + c.Name,
		HTML:    h,
	}, nil
}

// WelcomeEmail renders the greeting for a newly created account.
func WelcomeEmail(w Welcome) (Email, error) {
	h, err := populate(welcomeTmpl, w)
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: "Welcome to Fombina Tower",
		HTML:    h,
	}, nil
}

// PasswordResetEmail renders the email carrying a password reset link.
func PasswordResetEmail(pr PasswordReset) (Email, error) {
	h, err := populate(passwordResetTmpl, pr)
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: "Reset Your Fombina Tower Password",
		HTML:    h,
	}, nil
}

// ApplicationConfirmation renders the acknowledgement of a space
// application.
func ApplicationConfirmation(a Application) (Email, error) {
	h, err := populate(applicationTmpl, a)
	if err != nil {
		return Email{}, err
	}
	return Email{
		Subject: "Application Received - Fombina Tower",
		HTML:    h,
	}, nil
}

package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type testDriveNotificationEmailData struct {
	baseEmailData
	TestDrive
}

type testDriveConfirmationEmailData struct {
	baseEmailData
	FirstName string
	Model     string
}

// rendered is a fully composed email body.
type rendered struct {
	Subject string
	HTML    string
	Text    string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// renderTextTemplate renders the plain-text alternative from the same data as
// the HTML part. Values are written verbatim.
func renderTextTemplate(name string, data any) (string, error) {
	tmpl, err := texttemplate.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse text template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute text template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func renderTestDriveNotification(td TestDrive) (rendered, error) {
	data := testDriveNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectTestDriveNotification,
			Heading: subjectTestDriveNotification,
		},
		TestDrive: td,
	}
	html, err := renderEmailTemplate("test_drive_notification.html", data)
	if err != nil {
		return rendered{}, err
	}
	text, err := renderTextTemplate("test_drive_notification.txt", data)
	if err != nil {
		return rendered{}, err
	}
	return rendered{
		Subject: subjectTestDriveNotification,
		HTML:    html,
		Text:    text,
	}, nil
}

func renderTestDriveConfirmation(td TestDrive) (rendered, error) {
	data := testDriveConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "Test drive request received",
			Heading: "Test drive request received",
		},
		FirstName: td.FirstName,
		Model:     td.Model,
	}
	html, err := renderEmailTemplate("test_drive_confirmation.html", data)
	if err != nil {
		return rendered{}, err
	}
	text, err := renderTextTemplate("test_drive_confirmation.txt", data)
	if err != nil {
		return rendered{}, err
	}
	return rendered{
		Subject: subjectTestDriveConfirmation,
		HTML:    html,
		Text:    text,
	}, nil
}

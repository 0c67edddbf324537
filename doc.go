// Package consolemail renders and sends the notification emails of the
// Xtages console.
//
// # Quick Start
//
// Create a renderer pointed at the console, then render a build:
//
//	r, err := consolemail.NewRenderer(
//	    consolemail.WithConsoleURL("https://console.xtages.com"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	email, err := r.BuildStatusChanged(ctx, project, build, commitMessage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(email.Subject)
//
// The result holds the subject line plus an HTML and a plain-text body.
// Only CI builds and failed deployments to staging produce an email; any
// other build returns ErrInvalidBuildType.
//
// # Rendering Pipeline
//
//  1. Commit message normalization (line endings, blank lines)
//  2. Markdown to HTML via Goldmark (GFM, inline syntax highlighting)
//  3. Relative links resolved against the project's GitHub repository
//  4. html/template and text/template execution
//  5. CSS injection into <head>
//
// # Sending
//
// Notifier renders and delivers through a Sender. SMTPSender is the
// built-in one:
//
//	sender, err := consolemail.NewSMTPSender(consolemail.SMTPConfig{
//	    Host: "smtp.example.com",
//	    Port: 587,
//	})
//	n := consolemail.NewNotifier(r, sender,
//	    consolemail.WithNoReplyAddress("no-reply@xtages.com"),
//	    consolemail.WithMetrics(consolemail.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//	err = n.SendBuildStatusChanged(ctx, []consolemail.Recipients{
//	    consolemail.EmailRecipients{To: []string{"dev@example.com"}},
//	}, project, build, commitMessage)
//
// Exactly one EmailRecipients value is accepted per notification.
// WebPushRecipients is declared but not deliverable yet.
//
// # Styling
//
// Buttons come in five variants (ButtonPrimary ... ButtonDark), each with a
// fixed color. Images are served from the CDN at ImagesBaseURL.
//
// Override built-in styles and templates with an asset directory:
//
//	assets/
//	├── styles/
//	│   └── brand.css
//	└── templates/
//	    └── build-status-changed/
//	        ├── email.html
//	        └── email.txt
//
// # Previews
//
// Previewer renders email HTML to PDF or PNG in headless Chrome. go-rod
// downloads a managed Chromium on first run. In containers and CI set
// ROD_NO_SANDBOX=1, or ROD_BROWSER_BIN to use an installed Chrome.
package consolemail

package consolemail

// CDN host and image assets referenced by the email templates.
// File names carry a content hash, so a changed image gets a new URL.
const (
	CDNDomain     = "dqcve3avsmxqw.cloudfront.net"
	ImagesBaseURL = "https://" + CDNDomain + "/images"

	LogoURL            = ImagesBaseURL + "/logo-email.b7e29b8522d7664e0c54a5dc591d17eaf2406d13.png"
	ThumbsUpImageURL   = ImagesBaseURL + "/thumbs-up.0c9c1e4c364e7e8ea9b5dd240e8c801a2923c60c.png"
	ThumbsDownImageURL = ImagesBaseURL + "/thumbs-down.34103e505b97cd1c486dcc26eee345850deb48a7.png"
)

// Asset names a CDN image for listings (CLI, previews).
type Asset struct {
	Name string
	URL  string
}

// CDNAssets returns the email images in a stable order.
func CDNAssets() []Asset {
	return []Asset{
		{Name: "logo", URL: LogoURL},
		{Name: "thumbs-up", URL: ThumbsUpImageURL},
		{Name: "thumbs-down", URL: ThumbsDownImageURL},
	}
}

// StatusIconURL returns the thumbs-up image for a succeeded build
// and the thumbs-down image for anything else.
func StatusIconURL(status BuildStatus) string {
	if status == BuildSucceeded {
		return ThumbsUpImageURL
	}
	return ThumbsDownImageURL
}

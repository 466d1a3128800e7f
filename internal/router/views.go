package router

const (
	loaderView   = "Loading..."
	notFoundView = "404 - Page Not Found"
	errorView    = "Error loading page\nSorry, an error occurred. Please try again."
)

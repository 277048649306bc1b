package bundler

// ReadPageForTest exposes readPage.
var ReadPageForTest = readPage

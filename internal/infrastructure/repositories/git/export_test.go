package git

// AuthForURL exports authForURL for testing.
var AuthForURL = authForURL //nolint:gochecknoglobals // test export

// ProviderFromURL exports providerFromURL for testing.
var ProviderFromURL = providerFromURL //nolint:gochecknoglobals // test export

// WorkspacePrefix exports workspacePrefix for testing.
var WorkspacePrefix = workspacePrefix //nolint:gochecknoglobals // test export

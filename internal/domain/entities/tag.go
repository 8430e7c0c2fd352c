package entities

// FormatTagPrefix renders the tag prefix of a project. An explicit template
// may reference {{projectName}} (or {{target}}); without one, synchronized
// workspaces use "v" and independent projects "<projectName>-".
func FormatTagPrefix(versionTagPrefix *string, projectName string, syncVersions bool) string {
	if versionTagPrefix != nil {
		return RenderTemplate(*versionTagPrefix, TemplateContext{
			"target":      projectName,
			"projectName": projectName,
		})
	}
	if syncVersions {
		return "v"
	}
	return projectName + "-"
}

// FormatTag joins the prefix and the version.
func FormatTag(tagPrefix, version string) string {
	return tagPrefix + version
}

// FormatCommitMessage renders the release commit message.
func FormatCommitMessage(commitMessageFormat, projectName, version string) string {
	return RenderTemplate(commitMessageFormat, TemplateContext{
		"projectName": projectName,
		"version":     version,
	})
}

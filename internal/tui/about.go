package tui

import (
	"strings"

	"github.com/MKhiriev/go-notes-keeper/models"
)

func renderAbout(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: go-notes-keeper\n")
	b.WriteString("Version: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\nDate: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\nCommit: ")
	b.WriteString(info.BuildCommit())

	return appStyle.Render(overlayBoxStyle.Render(titleStyle.Render("ABOUT") + "\n\n" + b.String() + "\n\n" + helpStyle.Render("esc close")))
}

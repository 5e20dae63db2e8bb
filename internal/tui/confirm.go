package tui

import "github.com/MKhiriev/go-notes-keeper/models"

type confirmModel struct {
	note models.Note
}

func (m confirmModel) View() string {
	content := "Delete \"" + fitText(m.note.Content, 40) + "\"?\n\n"
	content += helpStyle.Render("y yes    n no")
	return overlayBoxStyle.Render(content)
}

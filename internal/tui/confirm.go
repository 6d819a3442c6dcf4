package tui

type confirmModel struct {
	path string
}

func (m confirmModel) View() string {
	content := "Delete \"" + m.path + "\"?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}

package tui

const helpMD = `# feedlog

Log feedings with the form, browse them in the list below.

## Form

- **tab / shift+tab** — move between fields (and into the list)
- **left / right** — change the animal (when the animal field is focused)
- **enter** — save the entry (validation errors appear under each field)
- **esc** — abandon an in-progress edit

## List

- **j / k** or arrows — move the selection
- **e** or **enter** — edit the selected record
- **d** — delete the selected record (asks for confirmation)
- **r** — reload the list from the server
- **/** — filter by animal
- **q** — quit

Saving never runs while another save is pending; the spinner next to the
save hint shows an outstanding request.`

func renderHelpModal(width int) string {
	return renderModalBox(width, "Help", renderMarkdown(helpMD, modalBodyWidth(width))+"\n\n"+styleMuted().Render("esc: close"))
}

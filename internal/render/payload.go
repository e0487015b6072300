package render

// Payload is the platform-neutral shape of an outbound display. The
// discord adapter maps it onto embeds and message components; the core
// never touches platform types.
type Payload struct {
	Embeds []Embed
	Rows   []Row
}

type Embed struct {
	Title       string
	Description string
	Fields      []Field
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// ButtonStyle mirrors the platform's button palette.
type ButtonStyle string

const (
	ButtonSecondary ButtonStyle = "secondary"
	ButtonDanger    ButtonStyle = "danger"
	ButtonSuccess   ButtonStyle = "success"
)

type Button struct {
	ActionID string
	Label    string
	Style    ButtonStyle
}

type SelectOption struct {
	Label       string
	Value       string
	Description string
}

type SelectMenu struct {
	ActionID    string
	Placeholder string
	MaxValues   int
	Options     []SelectOption
}

// Row holds either buttons or a single select menu, matching the
// platform's component-row rules.
type Row struct {
	Buttons []Button
	Select  *SelectMenu
}

package toolmanager

// Name is the closed set of tool identifiers the model may call.
type Name string

const (
	List    Name = "list"
	Read    Name = "read"
	Outline Name = "outline"
	Log     Name = "log"
	Show    Name = "show"
)

// Names lists every tool identifier in declaration order.
var Names = []Name{List, Read, Outline, Log, Show}

// ParseName maps a raw identifier from the model onto a Name.
func ParseName(s string) (Name, bool) {
	switch n := Name(s); n {
	case List, Read, Outline, Log, Show:
		return n, true
	default:
		return "", false
	}
}

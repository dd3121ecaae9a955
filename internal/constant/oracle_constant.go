package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// The eight archetype labels assignable by the diagnosis quiz.
var ArchetypeLabels = []string{
	"賢者",
	"共感者",
	"錬金術師",
	"開拓者",
	"守護者",
	"職人",
	"調停者",
	"魔術師",
}

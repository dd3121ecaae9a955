package prompt

import (
	"strings"

	"github.com/oraclehub-commits/brain-hub/internal/constant"
	"github.com/oraclehub-commits/brain-hub/internal/entity"
)

// Composer assembles the system instruction for one consult turn from the
// fixed advisor persona, the optional archetype profile, and the tier
// memory framing.
type Composer struct {
	isPro   bool
	profile *entity.ArchetypeProfile
}

func NewComposer(isPro bool, profile *entity.ArchetypeProfile) *Composer {
	return &Composer{
		isPro:   isPro,
		profile: profile,
	}
}

func (c *Composer) Build() string {
	var instruction strings.Builder

	instruction.WriteString(constant.OracleBaseInstructionV1)

	c.writeArchetype(&instruction)
	c.writeMemoryFraming(&instruction)

	return instruction.String()
}

// writeArchetype injects personalization when a diagnosis exists. PRO
// users with a complete diagnosis get the verbatim shadow/solution text,
// everyone else gets the one-line generic trait. No diagnosis, no section.
func (c *Composer) writeArchetype(instruction *strings.Builder) {
	if c.profile == nil || c.profile.Type == "" {
		return
	}

	if c.isPro && c.profile.Shadow != "" && c.profile.Solution != "" {
		instruction.WriteString("\n\n🧠 【ユーザーの脳タイプ】: ")
		instruction.WriteString(c.profile.Type)
		instruction.WriteString("\n\n⚠️ 【あなたの「影」（制限の正体）】:\n")
		instruction.WriteString(c.profile.Shadow)
		instruction.WriteString("\n\n🔑 【解決策】:\n")
		instruction.WriteString(c.profile.Solution)
		instruction.WriteString("\n\nこのユーザーの思考パターン、ブレーキ要因、そして最適なアプローチを深く理解した上で、アドバイスを提供してください。\n")
		instruction.WriteString("過去の会話履歴から、ユーザーの行動の癖や傾向も分析し、より的確な「バグの書き換え」を提案してください。\n")
		instruction.WriteString("ユーザーが「影」に陥りそうな兆候を見つけたら、優しく警告し、解決策へ導いてください。")
		return
	}

	trait, ok := constant.ArchetypeGeneralTraits[c.profile.Type]
	if !ok {
		return
	}
	instruction.WriteString("\n\n🧠 このユーザーの脳タイプは「")
	instruction.WriteString(c.profile.Type)
	instruction.WriteString("」です。")
	instruction.WriteString(trait)
	instruction.WriteString("\nこの特性を考慮しながら、アドバイスを提供してください。")
}

// writeMemoryFraming tells the model what it can remember. Framing only,
// the history window was already enforced before assembly.
func (c *Composer) writeMemoryFraming(instruction *strings.Builder) {
	if c.isPro {
		instruction.WriteString(constant.OracleProMemoryFramingV1)
		return
	}
	instruction.WriteString(constant.OracleFreeMemoryFramingV1)
}

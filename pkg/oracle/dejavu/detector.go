package dejavu

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// minSharedKeywords is how many keywords a past message must share with
// the current one to count as the same topic.
const minSharedKeywords = 2

// minKeywordLen is the byte-length floor for a token to count as a
// keyword, so short CJK tokens like 投稿 (two runes, six bytes) still
// qualify. minKeywordRunes keeps single-character tokens out: particles
// such as を and が are one rune but already three bytes in UTF-8, so
// byte length alone would let them through.
const (
	minKeywordLen   = 3
	minKeywordRunes = 2
)

// Candidate is one past user message eligible for deja-vu matching, i.e.
// a message from a session that already fell out of the FREE memory
// window.
type Candidate struct {
	Content     string
	SessionDate time.Time
}

// Match describes the detected recurrence of a past topic.
type Match struct {
	MatchedDate time.Time
	Summary     string
}

// Detect scans candidates in the given order and returns the first one
// sharing minSharedKeywords keywords with the current message, or nil.
// Callers pass candidates newest-session-first, so the returned match is
// the most recent recurrence.
func Detect(current string, candidates []Candidate) *Match {
	currentLower := strings.ToLower(current)

	for _, candidate := range candidates {
		if sharesTopic(currentLower, candidate.Content) {
			return &Match{
				MatchedDate: candidate.SessionDate,
				Summary:     summarize(candidate.Content),
			}
		}
	}
	return nil
}

// sharesTopic counts distinct keywords of the past message that occur in
// the current one. Containment rather than exact token equality, since
// Japanese input is rarely whitespace-segmented the same way twice.
func sharesTopic(currentLower, past string) bool {
	seen := make(map[string]bool)
	shared := 0
	for _, token := range strings.Fields(strings.ToLower(past)) {
		if len(token) < minKeywordLen || utf8.RuneCountInString(token) < minKeywordRunes || seen[token] {
			continue
		}
		seen[token] = true
		if strings.Contains(currentLower, token) {
			shared++
			if shared >= minSharedKeywords {
				return true
			}
		}
	}
	return false
}

func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= 30 {
		return content
	}
	return string(runes[:30]) + "..."
}

// Notice renders the fixed upsell addendum appended to the reply when a
// match is found. It becomes part of the persisted assistant message.
func Notice(matchedDate time.Time) string {
	return fmt.Sprintf(`

---

🔮 **【既視感（デジャヴ）を検知しました】**

実は、%sにも、このテーマについて考えていた形跡があります。

ただ、現在のOS制限により、当時の会話の詳細な照合ができません...
「あの時の自分なら、今の自分に何と言うだろう？」

その答えは、過去の自分の中にあるかもしれません。

💎 **PRO版の「全知性メモリ」では**:
- 過去の全会話から、同じテーマでの悩みの変遷を追跡
- 当時のあなたが見つけた解決策を、今のあなたに提示
- 「過去の自分」という最高のメンターから、答えを導き出せます

もし、この「既視感」の正体を知りたいと思ったら、
[友達を招待してPRO版を無料で試す](/dashboard/referral)ことができます。

※3人招待で30日間、過去の自分との対話が可能になります。
`, matchedDate.Format("2006年1月2日"))
}

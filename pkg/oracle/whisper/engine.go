package whisper

import (
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/topics"
)

type TriggerType string

const (
	TriggerSuccess    TriggerType = "success"
	TriggerStagnation TriggerType = "stagnation"
	TriggerCompletion TriggerType = "completion"
)

// Trigger describes why a whisper fires. Intensity is the recurrence
// count of the most repeated topic, capped at 5.
type Trigger struct {
	Type      TriggerType
	Intensity int
	Topic     string
}

// Message is the advisory postscript attached to a reply. It never
// affects control flow elsewhere.
type Message struct {
	Type TriggerType
	Text string
	CTA  string
}

const (
	recentWindow        = 5
	stagnationThreshold = 3
	maxIntensity        = 5
	minConsultations    = 3
)

var whisperTable = map[TriggerType][]Message{
	TriggerSuccess: {
		{
			Type: TriggerSuccess,
			Text: "素晴らしい成果です。この質を常態化させるには、思考力のレベルアップが不可欠です。",
		},
		{
			Type: TriggerSuccess,
			Text: "成功体験を一度きりで終わらせないために、「なぜうまくいったか」を言語化しておくことをお勧めします。",
		},
	},
	TriggerStagnation: {
		{
			Type: TriggerStagnation,
			Text: "同じ悩みが繰り返されています。これはツールの問題ではなく、思考OSのアップデートが必要なサインです。",
			CTA:  "思考レベル診断を受ける",
		},
		{
			Type: TriggerStagnation,
			Text: "行動が変わらない限り、結果は変わりません。今の自分の「限界」を正しく認識することが、成長の第一歩です。",
		},
	},
	TriggerCompletion: {
		{
			Type: TriggerCompletion,
			Text: "今日も一歩前進しました。しかし、真の成長は「やり方」ではなく「考え方」の変化から生まれます。",
		},
		{
			Type: TriggerCompletion,
			Text: "ツールはあくまで道具です。使い手のレベルが上がらなければ、成果には限界があります。",
		},
	},
}

type Engine struct {
	extractor topics.TopicExtractor
}

func NewEngine(extractor topics.TopicExtractor) *Engine {
	return &Engine{
		extractor: extractor,
	}
}

// DetectStagnation flags a topic recurring in at least 3 of the last 5
// user messages. Returns nil when the history is too short or nothing
// repeats.
func (e *Engine) DetectStagnation(userMessages []string) *Trigger {
	if len(userMessages) < minConsultations {
		return nil
	}

	recent := userMessages
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	counts := make(map[string]int)
	for _, msg := range recent {
		for _, topic := range e.extractor.Topics(msg) {
			counts[topic]++
		}
	}

	var topTopic string
	var topCount int
	for topic, count := range counts {
		if count > topCount {
			topTopic, topCount = topic, count
		}
	}

	if topCount < stagnationThreshold {
		return nil
	}

	intensity := topCount
	if intensity > maxIntensity {
		intensity = maxIntensity
	}
	return &Trigger{
		Type:      TriggerStagnation,
		Intensity: intensity,
		Topic:     topTopic,
	}
}

// DetectSuccess checks the most recent user message for a success signal.
func (e *Engine) DetectSuccess(userMessages []string) bool {
	if len(userMessages) == 0 {
		return false
	}
	return e.extractor.IsSuccess(userMessages[len(userMessages)-1])
}

// Generate picks the postscript for the turn. Priority:
// success > stagnation > completion.
func (e *Engine) Generate(userMessages []string) Message {
	if e.DetectSuccess(userMessages) {
		return pick(TriggerSuccess, 1)
	}
	if trigger := e.DetectStagnation(userMessages); trigger != nil {
		return pick(TriggerStagnation, trigger.Intensity)
	}
	return pick(TriggerCompletion, 1)
}

// pick selects from the table by intensity bucket, clamped to the
// available options.
func pick(trigger TriggerType, intensity int) Message {
	options := whisperTable[trigger]
	index := intensity - 1
	if index >= len(options) {
		index = len(options) - 1
	}
	if index < 0 {
		index = 0
	}
	return options[index]
}

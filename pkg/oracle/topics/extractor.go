package topics

import "strings"

// TopicExtractor abstracts the fixed keyword vocabularies so the
// stagnation/success detection stays locale-agnostic. Swap the
// implementation to support another market without touching the
// trigger logic.
type TopicExtractor interface {
	// Topics returns the vocabulary keywords present in the message.
	Topics(message string) []string
	// IsSuccess reports whether the message contains a success signal.
	IsSuccess(message string) bool
}

// businessTopics is the consultation topic vocabulary for the Japanese
// solo-entrepreneur audience.
var businessTopics = []string{
	"売上", "集客", "発信", "SNS", "フォロワー",
	"お金", "時間", "モチベーション", "自信",
	"クライアント", "商品", "サービス", "価格",
	"競合", "差別化", "ブランディング",
	"不安", "焦り", "迷い", "決断",
}

var successKeywords = []string{
	"成功", "うまくいった", "できた", "達成",
	"売れた", "契約", "申し込み", "感謝",
}

type JapaneseBusinessExtractor struct{}

func NewJapaneseBusinessExtractor() *JapaneseBusinessExtractor {
	return &JapaneseBusinessExtractor{}
}

func (e *JapaneseBusinessExtractor) Topics(message string) []string {
	found := make([]string, 0)
	for _, kw := range businessTopics {
		if strings.Contains(message, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func (e *JapaneseBusinessExtractor) IsSuccess(message string) bool {
	for _, kw := range successKeywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

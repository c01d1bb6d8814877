package assets

import _ "embed" // 에셋 임베드용

// GameMessagesYAML 는 립 봇 메시지 YAML이다.
//
//go:embed messages/rip-messages.yml
var GameMessagesYAML string

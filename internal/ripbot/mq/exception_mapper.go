package mq

import (
	"errors"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	riperrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/errors"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
)

// ErrorMapping 는 타입이다.
type ErrorMapping struct {
	Key    string
	Params []messageprovider.Param
}

// GetErrorMapping 는 동작을 수행한다.
func GetErrorMapping(err error, commandPrefix string) ErrorMapping {
	var (
		insufficient riperrors.InsufficientFundsError
		tooSmall     riperrors.BetTooSmallError
		invalidPick  riperrors.InvalidPickError
		noRound      riperrors.NoOpenRoundError
		badAdminArgs riperrors.InvalidAdminArgsError
	)

	switch {
	case errors.As(err, &insufficient):
		return ErrorMapping{
			Key: messages.BetInsufficient,
			Params: []messageprovider.Param{
				messageprovider.P("balance", insufficient.Balance),
				messageprovider.P("amount", insufficient.Amount),
			},
		}
	case errors.As(err, &tooSmall):
		return ErrorMapping{
			Key: messages.BetBelowMinimum,
			Params: []messageprovider.Param{
				messageprovider.P("minimum", tooSmall.Minimum),
			},
		}
	case errors.As(err, &invalidPick):
		return ErrorMapping{Key: messages.BetInvalidPick}
	case errors.As(err, &noRound):
		return ErrorMapping{Key: messages.RoundNone}
	case errors.As(err, &badAdminArgs):
		return ErrorMapping{
			Key: messages.AdminInvalidArgs,
			Params: []messageprovider.Param{
				messageprovider.P("prefix", commandPrefix),
			},
		}
	default:
		return ErrorMapping{Key: messages.ErrorGeneric}
	}
}

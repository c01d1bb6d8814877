package valkeyx

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// SetStringEX: 문자열 값을 TTL과 함께 저장한다. (SET ... EX)
// ttl이 0 이하이면 TTL 없이 저장한다.
func SetStringEX(ctx context.Context, client valkey.Client, key string, value string, ttl time.Duration) error {
	builder := client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return client.Do(ctx, cmd).Error()
}

// GetBytes: 키의 값을 바이트로 조회한다. 키가 없으면 ok=false를 반환한다.
func GetBytes(ctx context.Context, client valkey.Client, key string) ([]byte, bool, error) {
	cmd := client.B().Get().Key(key).Build()
	raw, err := client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// GetDelBytes: 키의 값을 조회하면서 원자적으로 삭제한다. (GETDEL)
// 키가 없으면 ok=false를 반환한다.
func GetDelBytes(ctx context.Context, client valkey.Client, key string) ([]byte, bool, error) {
	cmd := client.B().Getdel().Key(key).Build()
	raw, err := client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// DeleteKeys: 주어진 키들을 삭제한다. (DEL)
func DeleteKeys(ctx context.Context, client valkey.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := client.B().Del().Key(keys...).Build()
	return client.Do(ctx, cmd).Error()
}

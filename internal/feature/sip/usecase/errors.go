// Package usecase はsipフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

// ErrInvalidSipParams はSIPパラメータがドキュメント化された範囲外の場合に返されます。
var ErrInvalidSipParams = errors.New("invalid sip parameters")

package eventbus

import "weak"

// Token 订阅者身份标识
//
// 内部保存由订阅者指针创建的 weak.Pointer。由同一指针创建的弱指针
// 永远相等，即使对象已被回收，因此 Token 在订阅者整个生命周期内稳定，
// 只用于相等比较，从不解引用。
//
// 零值 Token 表示 nil 订阅者。
type Token struct {
	p any
}

// TokenOf 返回订阅者的身份标识；sub 为 nil 时返回零值
func TokenOf[S any](sub *S) Token {
	if sub == nil {
		return Token{}
	}
	return Token{p: weak.Make(sub)}
}

// IsZero 是否为零值
func (t Token) IsZero() bool { return t.p == nil }

package service

import "errors"

var (
	// ErrRateLimited 同一邮箱仍处于提交冷却窗口内
	ErrRateLimited = errors.New("submission rate limited")
	// ErrDuplicate 与已存留言完全重复的提交
	ErrDuplicate = errors.New("duplicate submission")
)

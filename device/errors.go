package device

import "errors"

// ErrOutOfRange 表示寻道目标超出磁带块范围
var ErrOutOfRange = errors.New("tape position out of range")

// ErrEmptyTape 表示对空磁带执行读取或移动操作
var ErrEmptyTape = errors.New("tape is empty")

package outfit

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates 检索阶段没有为某个品类找到任何候选
	ErrNoCandidates = errors.New("no candidates found")
	// ErrEmptyAssembly 候选存在但装配产出了空结果
	ErrEmptyAssembly = errors.New("outfit assembly returned an empty result")
)

// NoCandidatesError 指明具体缺失候选的品类
type NoCandidatesError struct {
	Category string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no candidates found for category %q", e.Category)
}

func (e *NoCandidatesError) Unwrap() error {
	return ErrNoCandidates
}

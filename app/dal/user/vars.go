package user

import (
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var (
	ErrNotFound = sqlx.ErrNotFound
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

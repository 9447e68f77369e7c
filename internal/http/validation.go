package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// registerValidators добавляет notblank в валидатор gin
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

// messenger сообщения об ошибках валидации по ключу "Field.tag"
type messenger interface {
	messages() map[string]string
}

// bind разбирает JSON в req; при ошибке отвечает 400 и возвращает false
func bind(c *gin.Context, req messenger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, bindError(err, req))
		return false
	}
	return true
}

func bindError(err error, req messenger) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &validationError{msg: "Malformed request body"}
	}
	fe := verrs[0]
	if msg, ok := req.messages()[fe.StructField()+"."+fe.Tag()]; ok {
		return &validationError{msg: msg}
	}
	return &validationError{msg: fmt.Sprintf("%s is invalid", fe.Field())}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, &validationError{msg: "invalid id"})
		return 0, false
	}
	return id, true
}

package response

import (
	"github.com/gin-gonic/gin"

	apperrors "buzzy/pkg/errors"
)

// Response is the standard API envelope. Error 0 means success.
type Response struct {
	Error  int32  `json:"error"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
	Data   any    `json:"data"`
}

// R sends data as-is, without the envelope.
func R(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Success(c *gin.Context, data any) {
	c.JSON(200, Response{
		Error: 0,
		Msg:   "Success",
		Data:  data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(200, Response{
		Error: int32(code),
		Msg:   msg,
		Data:  nil,
	})
}

// FromError maps an error to an envelope, preserving AppError codes and
// detail. Unknown errors get CodeUnknown.
func FromError(err error) Response {
	if err == nil {
		return Response{
			Error: 0,
			Msg:   "Success",
		}
	}

	code := apperrors.GetCode(err)
	msg := apperrors.GetMessage(err)

	var detail string
	if appErr, ok := err.(*apperrors.AppError); ok {
		detail = appErr.Detail
	}

	return Response{
		Error:  int32(code),
		Msg:    msg,
		Detail: detail,
		Data:   nil,
	}
}

func ErrorResponse(c *gin.Context, err error) {
	c.JSON(200, FromError(err))
}

package result

import (
	"context"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// Status 是只设置状态码、没有正文的结果。
type Status struct {
	Code int
}

// 无状态的共享实例。
var (
	OK        = Status{Code: consts.StatusOK}
	Created   = Status{Code: consts.StatusCreated}
	Accepted  = Status{Code: consts.StatusAccepted}
	NoContent = Status{Code: consts.StatusNoContent}
)

// NewStatus 返回给定状态码的结果。
func NewStatus(code int) Status {
	return Status{Code: code}
}

func (r Status) StatusCode() int {
	return statusOr(r.Code)
}

func (r Status) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	resp.SetStatusCode(r.StatusCode())
	return nil
}

// Redirect 是设置 Location 标头的重定向结果。
type Redirect struct {
	Code     int
	Location string
}

// NewRedirect 返回 302 重定向。
func NewRedirect(location string) Redirect {
	return Redirect{Code: consts.StatusFound, Location: location}
}

// NewMovedPermanently 返回 301 重定向。
func NewMovedPermanently(location string) Redirect {
	return Redirect{Code: consts.StatusMovedPermanently, Location: location}
}

func (r Redirect) StatusCode() int {
	if r.Code == 0 {
		return consts.StatusFound
	}
	return r.Code
}

func (r Redirect) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	resp.SetStatusCode(r.StatusCode())
	resp.Header.Set(consts.HeaderLocation, r.Location)
	return nil
}

// WithHeader 返回在 r 之前先设置一个响应标头的结果。
func WithHeader(r Result, key, value string) Result {
	return &headerResult{Result: r, key: key, value: value}
}

type headerResult struct {
	Result
	key   string
	value string
}

func (r *headerResult) Apply(c context.Context, req *protocol.Request, resp *protocol.Response) error {
	resp.Header.Set(r.key, r.value)
	return r.Result.Apply(c, req, resp)
}

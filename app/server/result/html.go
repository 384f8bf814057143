package result

import (
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/fsnotify/fsnotify"
)

// HTML 包含状态码、模板名称、模板和所需的数据。
type HTML struct {
	Code     int
	Template *template.Template
	Name     string
	Data     any
}

func (r HTML) StatusCode() int {
	return statusOr(r.Code)
}

// Apply 执行模板并写入超文本，Name 为空时执行根模板。
func (r HTML) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMETextHtmlUTF8)
	if r.Name == "" {
		return r.Template.Execute(resp.BodyWriter(), r.Data)
	}
	return r.Template.ExecuteTemplate(resp.BodyWriter(), r.Name, r.Data)
}

// HTMLRender 超文本渲染器，会被 HTMLProduction 和 HTMLDebug 实现。
type HTMLRender interface {
	// Instance 返回一个 HTML 结果。
	Instance(code int, name string, data any) HTML
	Close() error
}

var (
	_ HTMLRender = HTMLProduction{}
	_ HTMLRender = (*HTMLDebug)(nil)
)

// HTMLProduction 用于生产环境的 HTML 渲染器。
type HTMLProduction struct {
	Template *template.Template
}

func (r HTMLProduction) Instance(code int, name string, data any) HTML {
	return HTML{
		Code:     code,
		Template: r.Template,
		Name:     name,
		Data:     data,
	}
}

func (r HTMLProduction) Close() error {
	return nil
}

// Delims 用于 HTML 模板渲染的左、右分隔符。
type Delims struct {
	Left  string // 左分隔符，默认为 "{{"。
	Right string // 右分隔符，默认为 "}}"。
}

// HTMLDebug 用于调试的 HTML 渲染器，模板文件变化后于下次渲染时重载。
type HTMLDebug struct {
	sync.Once
	Template        *template.Template
	RefreshInterval time.Duration // 若 > 0 则按间隔时间重载，反之使用 fsnotify 自动重载。

	Files   []string
	FuncMap template.FuncMap
	Delims  Delims

	reloadCh chan struct{}
	watcher  *fsnotify.Watcher
}

func (r *HTMLDebug) Instance(code int, name string, data any) HTML {
	r.Do(func() {
		if r.Template == nil {
			r.reload()
		}
		r.startChecker()
	})

	select {
	case <-r.reloadCh:
		r.reload()
	default:
	}

	return HTML{
		Code:     code,
		Template: r.Template,
		Name:     name,
		Data:     data,
	}
}

func (r *HTMLDebug) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

func (r *HTMLDebug) startChecker() {
	r.reloadCh = make(chan struct{})

	// 按指定间隔重载
	if r.RefreshInterval > 0 {
		go func() {
			hlog.SystemLogger().Debugf("[HTMLDebug] HTML 模板间隔 %v 重载一次", r.RefreshInterval)
			for range time.Tick(r.RefreshInterval) {
				r.reloadCh <- struct{}{}
			}
		}()
		return
	}

	// 利用 fsnotify 自动监视文件并重载
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		hlog.SystemLogger().Errorf("[HTMLDebug] 创建文件监视器出错，模板不再自动重载：%v", err)
		return
	}
	r.watcher = watcher
	for _, f := range r.Files {
		hlog.SystemLogger().Debugf("[HTMLDebug] 正在监视文件：%s", f)
		if err := watcher.Add(f); err != nil {
			hlog.SystemLogger().Errorf("[HTMLDebug] 添加监视文件：%s，出现错误：%v", f, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					hlog.SystemLogger().Debugf("[HTMLDebug] 修改的文件：%s，HTML 模板将在下次渲染时重载", event.Name)
					r.reloadCh <- struct{}{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				hlog.SystemLogger().Errorf("[HTMLDebug] 监视模板文件出错：%v", err)
			}
		}
	}()
}

// 解析失败时保留原模板。
func (r *HTMLDebug) reload() {
	tmpl, err := template.New("").
		Delims(r.Delims.Left, r.Delims.Right).
		Funcs(r.FuncMap).
		ParseFiles(r.Files...)
	if err != nil {
		hlog.SystemLogger().Errorf("[HTMLDebug] 重载 HTML 模板出错：%v", err)
		return
	}
	r.Template = tmpl
}

package binding

import (
	"bytes"
	"errors"
	"net/url"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/mvc/common/hlog"
)

type User struct {
	Name     string
	Password string
	Age      int `default:"18"`
}

type Address struct {
	City string
	Zip  string `param:"postcode"`
}

type Profile struct {
	User
	Nick     string    `param:"nick_name"`
	Home     *Address
	Work     Address
	Tags     []string
	Scores   []int     `default:"60"`
	Birthday time.Time `resolver:"unix"`
	Secret   string    `param:"-"`
	Level    *int
	hidden   string
}

type Node struct {
	Name  string
	Child *Node
}

func newTestStructBinder(t *testing.T, v any) *StructBinder {
	b, err := NewStructBinder(reflect.TypeOf(v), nil, nil)
	assert.Nil(t, err)
	return b
}

func TestStructBinderPrefix(t *testing.T) {
	b := newTestStructBinder(t, User{})
	assert.Equal(t, reflect.TypeOf(User{}), b.TargetType())

	v, err := b.Bind("u", url.Values{"u.name": {"Alice"}, "u.password": {"secret"}})
	assert.Nil(t, err)
	assert.Equal(t, User{Name: "Alice", Password: "secret", Age: 18}, v)

	// 没有 u. 前缀的参数不参与绑定
	v, err = b.Bind("u", url.Values{"name": {"Alice"}})
	assert.Nil(t, err)
	assert.Equal(t, User{}, v)

	// 模型不存在时返回零值而非 nil
	v, err = b.Bind("u", url.Values{})
	assert.Nil(t, err)
	assert.Equal(t, User{}, v)

	// 前缀须完整匹配到点号
	v, err = b.Bind("u", url.Values{"user.name": {"Bob"}})
	assert.Nil(t, err)
	assert.Equal(t, User{}, v)
}

func TestStructBinderNested(t *testing.T) {
	b := newTestStructBinder(t, &Profile{})
	assert.Equal(t, reflect.TypeOf(Profile{}), b.TargetType())

	v, err := b.Bind("p", url.Values{
		"p.name":          {"Alice"},
		"p.nick_name":     {"al"},
		"p.home.city":     {"杭州"},
		"p.home.postcode": {"310000"},
		"p.work.city":     {"上海"},
		"p.tags":          {"a", "b"},
		"p.birthday":      {"1700000000"},
		"p.secret":        {"leak"},
		"p.level":         {"3"},
		"p.hidden":        {"x"},
	})
	assert.Nil(t, err)
	p := v.(Profile)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 18, p.Age)
	assert.Equal(t, "al", p.Nick)
	assert.Equal(t, &Address{City: "杭州", Zip: "310000"}, p.Home)
	assert.Equal(t, Address{City: "上海"}, p.Work)
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.Equal(t, []int{60}, p.Scores)
	assert.Equal(t, time.Unix(1700000000, 0), p.Birthday)
	assert.Equal(t, "", p.Secret)
	assert.Equal(t, 3, *p.Level)
	assert.Equal(t, "", p.hidden)

	// 未提交的指针字段保持为空
	v, err = b.Bind("p", url.Values{"p.name": {"Bob"}})
	assert.Nil(t, err)
	assert.Nil(t, v.(Profile).Home)
	assert.Nil(t, v.(Profile).Level)
}

func TestStructBinderDefaultNotShared(t *testing.T) {
	b := newTestStructBinder(t, Profile{})
	v1, _ := b.Bind("p", url.Values{"p.name": {"a"}})
	v2, _ := b.Bind("p", url.Values{"p.name": {"b"}})
	s1 := v1.(Profile).Scores
	s1[0] = 100
	assert.Equal(t, []int{60}, v2.(Profile).Scores)
}

func TestStructBinderJSON(t *testing.T) {
	var buf bytes.Buffer
	hlog.SetOutput(&buf)
	defer hlog.SetOutput(os.Stderr)

	b := newTestStructBinder(t, Profile{})
	v, err := b.Bind("p", url.Values{
		"p.home":      {`{"City":"北京","Zip":"100000"}`},
		"p.work":      {`not json`},
		"p.work.city": {"深圳"},
	})
	assert.Nil(t, err)
	p := v.(Profile)
	assert.Equal(t, &Address{City: "北京", Zip: "100000"}, p.Home)
	assert.Equal(t, Address{City: "深圳"}, p.Work)
	assert.Contains(t, buf.String(), "p.work")

	// 整个对象以 JSON 提交，点号参数随后覆盖
	ub := newTestStructBinder(t, User{})
	v, err = ub.Bind("u", url.Values{
		"u":      {`{"Name":"Alice","Password":"x"}`},
		"u.name": {"Bob"},
	})
	assert.Nil(t, err)
	assert.Equal(t, User{Name: "Bob", Password: "x", Age: 18}, v)

	// JSON 提交的字段不被默认值覆盖
	v, err = ub.Bind("u", url.Values{"u": {`{"Name":"Alice","Age":30}`}})
	assert.Nil(t, err)
	assert.Equal(t, User{Name: "Alice", Age: 30}, v)

	type Guest struct {
		Name string `default:"anon"`
		Age  int
	}
	gb := newTestStructBinder(t, Guest{})
	v, err = gb.Bind("g", url.Values{"g": {`{"Name":"Alice","Age":3}`}})
	assert.Nil(t, err)
	assert.Equal(t, Guest{Name: "Alice", Age: 3}, v)

	// 点号参数为空时保留 JSON 中的值
	v, err = gb.Bind("g", url.Values{"g": {`{"Name":"Alice"}`}, "g.name": {""}})
	assert.Nil(t, err)
	assert.Equal(t, Guest{Name: "Alice"}, v)

	v, err = gb.Bind("g", url.Values{"g.age": {"7"}})
	assert.Nil(t, err)
	assert.Equal(t, Guest{Name: "anon", Age: 7}, v)
}

func TestStructBinderDisableJSON(t *testing.T) {
	config := NewBindConfig()
	config.DisableStructJSON = true
	b, err := NewStructBinder(reflect.TypeOf(Profile{}), nil, config)
	assert.Nil(t, err)
	v, err := b.Bind("p", url.Values{"p.home": {`{"City":"北京"}`}})
	assert.Nil(t, err)
	assert.Nil(t, v.(Profile).Home)
}

func TestStructBinderErrors(t *testing.T) {
	b := newTestStructBinder(t, Profile{})
	_, err := b.Bind("p", url.Values{
		"p.age":       {"old"},
		"p.home.city": {"杭州"},
		"p.scores":    {"1", "x"},
		"p.level":     {"high"},
	})
	var errs BindErrors
	assert.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"p.age", "p.scores", "p.level"}, errs.Names())

	var re *ResolutionError
	assert.True(t, errors.As(errs[0], &re))
	assert.Equal(t, "old", re.Raw)
}

func TestStructBinderSelfReference(t *testing.T) {
	b := newTestStructBinder(t, Node{})
	v, err := b.Bind("n", url.Values{
		"n.name":  {"root"},
		"n.child": {`{"Name":"leaf"}`},
	})
	assert.Nil(t, err)
	assert.Equal(t, Node{Name: "root", Child: &Node{Name: "leaf"}}, v)
}

func TestStructBinderConfigErrors(t *testing.T) {
	_, err := NewStructBinder(reflect.TypeOf(0), nil, nil)
	assert.ErrorIs(t, err, ErrNoBinder)

	type badDefault struct {
		Age int `default:"abc"`
	}
	_, err = NewStructBinder(reflect.TypeOf(badDefault{}), nil, nil)
	assert.ErrorIs(t, err, ErrDefaultMismatch)

	type badResolver struct {
		Day time.Time `resolver:"missing"`
	}
	_, err = NewStructBinder(reflect.TypeOf(badResolver{}), nil, nil)
	assert.ErrorIs(t, err, ErrNoResolver)
}

func TestStructBinderValidate(t *testing.T) {
	type Account struct {
		Name string `vd:"len($)>0"`
		Age  int    `vd:"$>=0 && $<=130"`
	}
	b := newTestStructBinder(t, Account{})

	v, err := b.Bind("a", url.Values{"a.name": {"Alice"}, "a.age": {"30"}})
	assert.Nil(t, err)
	assert.Equal(t, Account{Name: "Alice", Age: 30}, v)

	_, err = b.Bind("a", url.Values{"a.name": {"Alice"}, "a.age": {"135"}})
	var ve *ValidateError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "a", ve.Name)
	assert.Contains(t, ve.FailPath, "Age")

	config := NewBindConfig()
	config.DisableValidation = true
	b, err = NewStructBinder(reflect.TypeOf(Account{}), nil, config)
	assert.Nil(t, err)
	_, err = b.Bind("a", url.Values{"a.age": {"135"}})
	assert.Nil(t, err)
}

func TestSubParams(t *testing.T) {
	sub := SubParams("u", url.Values{"u.name": {"Alice"}, "name": {"x"}, "u": {"raw"}})
	assert.Equal(t, url.Values{"name": {"Alice"}}, sub)
}

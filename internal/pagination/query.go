package pagination

import (
	"strconv"
	"strings"
)

// Order описывает порядок ленты: первичное выражение сортировки и колонку-тай-брейк.
// Оба направления всегда DESC.
type Order struct {
	Sort string
	ID   string
}

// SQL возвращает ORDER BY для ленты.
func (o Order) SQL() string {
	return "ORDER BY " + o.Sort + " DESC, " + o.ID + " DESC"
}

// Builder накапливает условия WHERE и позиционные аргументы ($1, $2, ...) для pgx.
// Нулевое значение готово к использованию.
type Builder struct {
	conds []string
	args  []any
}

// Arg регистрирует аргумент и возвращает его плейсхолдер.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)

	return "$" + strconv.Itoa(len(b.args))
}

// Where добавляет условие; пустые строки игнорируются.
func (b *Builder) Where(cond string) *Builder {
	if cond = strings.TrimSpace(cond); cond != "" {
		b.conds = append(b.conds, cond)
	}

	return b
}

// Seek добавляет предикат продолжения после ключа after:
//
//	(sort < $s OR (sort = $s AND id < $i))
//
// Для after == nil (первая страница) ничего не добавляет.
func (b *Builder) Seek(o Order, after *Key) *Builder {
	if after == nil {
		return b
	}

	s := b.Arg(after.Value())
	i := b.Arg(after.ID)

	return b.Where("(" + o.Sort + " < " + s + " OR (" + o.Sort + " = " + s + " AND " + o.ID + " < " + i + "))")
}

// Clause возвращает "WHERE a AND b ..." или пустую строку, если условий нет.
func (b *Builder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(b.conds, " AND ")
}

// Limit регистрирует LIMIT как аргумент и возвращает "LIMIT $n".
func (b *Builder) Limit(n int) string {
	return "LIMIT " + b.Arg(n)
}

// Args возвращает накопленные аргументы в порядке плейсхолдеров.
func (b *Builder) Args() []any {
	return b.args
}

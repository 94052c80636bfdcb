// Package pagination реализует курсорную (keyset) пагинацию: непрозрачный курсор,
// построение SQL-предиката продолжения и сборку страницы с признаком HasMore.
package pagination

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidArgument - некорректный параметр запроса (например, limit вне [1, MaxLimit]).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCursor - курсор не декодируется или выпущен лентой с другим видом сортировки.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// SortKind - вид первичного ключа сортировки ленты.
type SortKind uint8

const (
	// SortTime - сортировка по времени (created_at/updated_at и т.п.).
	SortTime SortKind = iota + 1
	// SortCount - сортировка по целочисленному счётчику (например, view_count).
	SortCount
)

// String возвращает однобуквенный тег вида, который пишется в курсор.
func (k SortKind) String() string {
	switch k {
	case SortTime:
		return "t"
	case SortCount:
		return "c"
	default:
		return "?"
	}
}

func parseKind(s string) (SortKind, bool) {
	switch s {
	case "t":
		return SortTime, true
	case "c":
		return SortCount, true
	default:
		return 0, false
	}
}

// Key - позиция в упорядоченной ленте: первичное значение сортировки и id для тай-брейка.
// Для SortTime заполнено поле Time, для SortCount - Count.
type Key struct {
	Kind  SortKind
	Time  time.Time
	Count int64
	ID    uuid.UUID
}

// TimeKey строит ключ для ленты, упорядоченной по времени.
func TimeKey(t time.Time, id uuid.UUID) Key {
	return Key{Kind: SortTime, Time: t.UTC(), ID: id}
}

// CountKey строит ключ для ленты, упорядоченной по счётчику.
func CountKey(n int64, id uuid.UUID) Key {
	return Key{Kind: SortCount, Count: n, ID: id}
}

// Value возвращает первичное значение сортировки в виде, пригодном для аргумента pgx.
func (k Key) Value() any {
	if k.Kind == SortCount {
		return k.Count
	}

	return k.Time
}

// Compare сравнивает ключи в порядке ленты (sort, id) по возрастанию:
// -1 если k раньше other, 0 если равны, 1 если позже.
// Ключи разных видов не сравниваются осмысленно; сравнение идёт по Kind.
func (k Key) Compare(other Key) int {
	if k.Kind != other.Kind {
		if k.Kind < other.Kind {
			return -1
		}
		return 1
	}

	switch k.Kind {
	case SortCount:
		if k.Count != other.Count {
			if k.Count < other.Count {
				return -1
			}
			return 1
		}
	default:
		if c := k.Time.Compare(other.Time); c != 0 {
			return c
		}
	}

	return bytes.Compare(k.ID[:], other.ID[:])
}

// Encode кодирует ключ в непрозрачный токен для клиента (base64url без паддинга).
// Формат полезной нагрузки: "<kind>|<value>|<uuid>", где value - UnixNano для времени
// и десятичное число для счётчика.
func Encode(k Key) string {
	var value string
	switch k.Kind {
	case SortCount:
		value = strconv.FormatInt(k.Count, 10)
	default:
		value = strconv.FormatInt(k.Time.UTC().UnixNano(), 10)
	}

	raw := k.Kind.String() + "|" + value + "|" + k.ID.String()

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode разбирает токен и проверяет, что он выпущен лентой с видом сортировки want.
// Любая ошибка разбора или несовпадение вида - ErrInvalidCursor.
func Decode(token string, want SortKind) (Key, error) {
	const op = "pagination.Decode"

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Key{}, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
	}

	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%s: bad parts: %w", op, ErrInvalidCursor)
	}

	kind, ok := parseKind(parts[0])
	if !ok || kind != want {
		return Key{}, fmt.Errorf("%s: kind %q: %w", op, parts[0], ErrInvalidCursor)
	}

	n, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("%s: value: %w", op, ErrInvalidCursor)
	}

	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Key{}, fmt.Errorf("%s: id: %w", op, ErrInvalidCursor)
	}

	if kind == SortCount {
		return CountKey(n, id), nil
	}

	return TimeKey(time.Unix(0, n), id), nil
}

// DecodeOptional - как Decode, но пустой токен означает «первая страница» и даёт nil.
func DecodeOptional(token string, want SortKind) (*Key, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	k, err := Decode(token, want)
	if err != nil {
		return nil, err
	}

	return &k, nil
}

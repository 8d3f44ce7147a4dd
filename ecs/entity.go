package ecs

import "strconv"

// Entity is a slot index into the store's parallel arrays. Ids are recycled
// and carry no generation, so a handle must not be held across ticks.
type Entity int32

// InvalidEntity is returned when the store has no free slot left.
const InvalidEntity Entity = -1

func (e Entity) String() string {
	return strconv.FormatInt(int64(e), 10)
}

func (e Entity) Valid() bool {
	return e >= 0
}

// Kind tags what an entity is. The values double as the sprite frame column
// in the default atlas.
type Kind uint8

const (
	KindPlayer Kind = 0
	KindBullet Kind = 1
	KindSnake  Kind = 2
	KindSpider Kind = 3
	KindGem    Kind = 6
)

// Kinds lists every kind in tag order.
var Kinds = []Kind{KindPlayer, KindBullet, KindSnake, KindSpider, KindGem}

// IsEnemy reports whether k is one of the homing enemy kinds.
func (k Kind) IsEnemy() bool {
	return k == KindSnake || k == KindSpider
}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindSnake:
		return "snake"
	case KindSpider:
		return "spider"
	case KindGem:
		return "gem"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind maps a prefab name back to its kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

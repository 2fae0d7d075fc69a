package catalog

import "github.com/mmr-tortoise/emojimix/internal/model"

// DefaultTemplate points at the public Emoji Kitchen asset bucket.
const DefaultTemplate = "https://www.gstatic.com/android/keyboard/emojikitchen/{revision}/u{hex1}/u{hex1}_u{hex2}.png"

// DefaultRevisions lists known Emoji Kitchen snapshots, oldest first.
// Most combinations were published in the early snapshots, so probing in
// this order finds common pairs quickly.
var DefaultRevisions = []model.CatalogRevision{
	"20201001",
	"20210218",
	"20210521",
	"20210831",
	"20211115",
	"20220110",
	"20220203",
	"20220406",
	"20220506",
	"20220815",
	"20220823",
	"20221101",
	"20221107",
	"20230126",
	"20230127",
	"20230216",
	"20230221",
	"20230301",
	"20230405",
	"20230418",
	"20230426",
	"20230613",
	"20230803",
	"20230818",
	"20230821",
	"20231113",
	"20231128",
	"20240206",
	"20240214",
	"20240530",
	"20240610",
	"20240715",
	"20241021",
	"20241023",
}

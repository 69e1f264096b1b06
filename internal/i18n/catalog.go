package i18n

// Message keys.
const (
	GetTitle       = "item.get.title"
	GetTake        = "item.get.take"
	GetFull        = "item.get.full"
	GetDecline     = "item.get.decline"
	GetDone        = "item.get.done"
	GetCoins       = "item.get.coins"
	AbandonTitle   = "item.abandon.title"
	AbandonPrompt  = "item.abandon.prompt"
	AbandonCancel  = "item.abandon.cancel"
	AbandonDropped = "item.abandon.dropped"
	UseTitle       = "item.use.title"
	UseUse         = "item.use.use"
	UseBroken      = "item.use.broken"
	UseBrokenHint  = "item.use.broken.hint"
	UseNone        = "item.use.none"
	UseOpen        = "item.use.open"
	UseClose       = "item.use.close"
	Back           = "item.back"
	BuyTitle       = "item.buy.title"
	BuyPoor        = "item.buy.poor"
	BuyFull        = "item.buy.full"
	BuyDrop        = "item.buy.drop"
	BuyConfirm     = "item.buy.confirm"
	BuyDone        = "item.buy.done"
	Locked         = "item.locked"

	Status         = "screen.status"
	BagTitle       = "screen.bag.title"
	BagDrop        = "screen.bag.drop"
	BagEmpty       = "screen.bag.empty"
	Restart        = "screen.restart"
	JournalLink    = "screen.journal"
	JournalSaved   = "journal.saved"
	JournalTitle   = "journal.title"
	JournalSummary = "journal.summary"
	JournalCarried = "journal.carried"
	JournalBroken  = "journal.broken"
	JournalNow     = "journal.now"
)

var english = map[string]string{
	GetTitle:       "Item found",
	GetTake:        "Take it",
	GetFull:        "Inventory full, drop something",
	GetDecline:     "Leave it",
	GetDone:        "Got %s",
	GetCoins:       "Got %d coins",
	AbandonTitle:   "Drop an item",
	AbandonPrompt:  "Pick an item from your inventory to drop.",
	AbandonCancel:  "Keep everything",
	AbandonDropped: "Dropped %s",
	UseTitle:       "Use item",
	UseUse:         "Use",
	UseBroken:      "Cannot use",
	UseBrokenHint:  "It needs a refill first.",
	UseNone:        "There is nothing left to use.",
	UseOpen:        "Open it",
	UseClose:       "Put it away",
	Back:           "Back",
	BuyTitle:       "Buy %s",
	BuyPoor:        "Not enough coins.",
	BuyFull:        "Your inventory is full. Drop something first.",
	BuyDrop:        "Drop an item",
	BuyConfirm:     "Buy (coins -%d)",
	BuyDone:        "Bought %s",
	Locked:         "You can't reach your bag right now.",

	Status:         "Health %d/%d  Spirit %d/%d  Coins %d",
	BagTitle:       "INVENTORY",
	BagDrop:        "DROP WHICH?",
	BagEmpty:       "(empty)",
	Restart:        "Restart",
	JournalLink:    "Journal (PDF)",
	JournalSaved:   "Journal saved to %s",
	JournalTitle:   "Journal",
	JournalSummary: "Health %d/%d   Spirit %d/%d   Coins %d   Scenes %d",
	JournalCarried: "Carried",
	JournalBroken:  "(broken)",
	JournalNow:     "<- now",
}

var traditionalChinese = map[string]string{
	GetTitle:       "獲得道具",
	GetTake:        "獲得道具",
	GetFull:        "道具已滿，放棄現有道具",
	GetDecline:     "放棄獲得道具",
	GetDone:        "獲得了 %s",
	GetCoins:       "獲得了 %d 枚硬幣",
	AbandonTitle:   "放棄道具",
	AbandonPrompt:  "請從道具欄選擇要放棄的道具。",
	AbandonCancel:  "取消放棄",
	AbandonDropped: "放棄了 %s",
	UseTitle:       "使用道具",
	UseUse:         "使用",
	UseBroken:      "無法使用",
	UseBrokenHint:  "需要先補充。",
	UseNone:        "已經用完了。",
	UseOpen:        "翻開",
	UseClose:       "不看了，收起來吧",
	Back:           "返回",
	BuyTitle:       "購買 %s",
	BuyPoor:        "沒有足夠的硬幣。",
	BuyFull:        "道具欄已滿，需要先放棄道具。",
	BuyDrop:        "放棄道具",
	BuyConfirm:     "確認購買 硬幣-%d",
	BuyDone:        "購買了 %s",
	Locked:         "現在無法打開道具欄。",

	Status:         "體力 %d/%d  精神 %d/%d  硬幣 %d",
	BagTitle:       "道具欄",
	BagDrop:        "要放棄哪一個？",
	BagEmpty:       "（空）",
	Restart:        "重新開始",
	JournalLink:    "日記 (PDF)",
	JournalSaved:   "日記已儲存至 %s",
	JournalTitle:   "日記",
	JournalSummary: "體力 %d/%d   精神 %d/%d   硬幣 %d   場景 %d",
	JournalCarried: "隨身物品",
	JournalBroken:  "（損壞）",
	JournalNow:     "<- 現在",
}

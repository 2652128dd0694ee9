package common

const (
	KEY_LAST_PRICE = "last_price:%s"
)

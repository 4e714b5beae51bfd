package tags

import "strconv"

// Standard session-level tag numbers.
const (
	Account         uint32 = 1
	AvgPx           uint32 = 6
	BeginSeqNo      uint32 = 7
	BeginString     uint32 = 8
	BodyLength      uint32 = 9
	CheckSum        uint32 = 10
	ClOrdID         uint32 = 11
	CumQty          uint32 = 14
	EndSeqNo        uint32 = 16
	ExecID          uint32 = 17
	MsgSeqNum       uint32 = 34
	MsgType         uint32 = 35
	NewSeqNo        uint32 = 36
	OrderID         uint32 = 37
	OrderQty        uint32 = 38
	OrdStatus       uint32 = 39
	OrdType         uint32 = 40
	PossDupFlag     uint32 = 43
	Price           uint32 = 44
	RefSeqNum       uint32 = 45
	SenderCompID    uint32 = 49
	SendingTime     uint32 = 52
	Side            uint32 = 54
	Symbol          uint32 = 55
	TargetCompID    uint32 = 56
	Text            uint32 = 58
	TimeInForce     uint32 = 59
	TransactTime    uint32 = 60
	EncryptMethod   uint32 = 98
	HeartBtInt      uint32 = 108
	TestReqID       uint32 = 112
	GapFillFlag     uint32 = 123
	ResetSeqNumFlag uint32 = 141
)

var names = map[uint32]string{
	Account:         "Account",
	AvgPx:           "AvgPx",
	BeginSeqNo:      "BeginSeqNo",
	BeginString:     "BeginString",
	BodyLength:      "BodyLength",
	CheckSum:        "CheckSum",
	ClOrdID:         "ClOrdID",
	CumQty:          "CumQty",
	EndSeqNo:        "EndSeqNo",
	ExecID:          "ExecID",
	MsgSeqNum:       "MsgSeqNum",
	MsgType:         "MsgType",
	NewSeqNo:        "NewSeqNo",
	OrderID:         "OrderID",
	OrderQty:        "OrderQty",
	OrdStatus:       "OrdStatus",
	OrdType:         "OrdType",
	PossDupFlag:     "PossDupFlag",
	Price:           "Price",
	RefSeqNum:       "RefSeqNum",
	SenderCompID:    "SenderCompID",
	SendingTime:     "SendingTime",
	Side:            "Side",
	Symbol:          "Symbol",
	TargetCompID:    "TargetCompID",
	Text:            "Text",
	TimeInForce:     "TimeInForce",
	TransactTime:    "TransactTime",
	EncryptMethod:   "EncryptMethod",
	HeartBtInt:      "HeartBtInt",
	TestReqID:       "TestReqID",
	GapFillFlag:     "GapFillFlag",
	ResetSeqNumFlag: "ResetSeqNumFlag",
}

// Name returns the standard name of tag, or its number when unknown.
func Name(tag uint32) string {
	if n, ok := names[tag]; ok {
		return n
	}
	return strconv.FormatUint(uint64(tag), 10)
}

func Known(tag uint32) bool {
	_, ok := names[tag]
	return ok
}

// Prefix is the "TAG=" text that opens a field carrying tag.
func Prefix(tag uint32) []byte {
	return append(strconv.AppendUint(nil, uint64(tag), 10), '=')
}

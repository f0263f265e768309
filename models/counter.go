// file: models/counter.go
package models

// SequenceCounter 报名编号计数器，整表只有一行。
// 编号通过单条原子 UPDATE 自增发放，避免并发创建时读旧值撞号。
type SequenceCounter struct {
	ID    uint32 `gorm:"primarykey"`
	Value int64  `gorm:"not null"`
}

func (SequenceCounter) TableName() string {
	return "nextlevel_sequence_counter"
}

// CounterRowID 计数器固定行的主键
const CounterRowID uint32 = 1

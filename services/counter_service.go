// file: services/counter_service.go
package services

import (
	"log"
	"time"
)

// CounterService 发放用户可见的报名编号
type CounterService struct {
	store SubmissionStore
}

func NewCounterService(store SubmissionStore) *CounterService {
	return &CounterService{store: store}
}

// NextNumber 取下一个编号。库不可用时退化为时间戳编号，
// 宁可冒重号的小概率风险也不阻塞报名
func (s *CounterService) NextNumber() int64 {
	n, err := s.store.NextSequence()
	if err != nil {
		log.Printf("Sequence counter unavailable, falling back to timestamp: %v", err)
		return time.Now().Unix()
	}
	return n
}

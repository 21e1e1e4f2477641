package main

import (
	"go.uber.org/zap"

	"github.com/webbmaffian/go-own/list"
)

func main() {
	logger, err := zap.NewDevelopment()

	if err != nil {
		panic(err)
	}

	defer logger.Sync()

	l := list.New[int]()
	defer l.Close()

	l.Push(12)
	l.Push(23)
	l.Push(42)

	logger.Info("pushed", zap.Stringer("list", l))

	if v, ok := l.Peek(); ok {
		logger.Info("peek", zap.Int("head", v))
	}

	for v := range l.Drain() {
		logger.Info("pop", zap.Int("val", v), zap.Int("left", l.Len()))
	}

	if _, ok := l.Pop(); !ok {
		logger.Info("list is empty")
	}
}

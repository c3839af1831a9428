package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("psort: ")

	// 인터럽트는 벤치마크 사이에서만 반영된다. 진행 중인 정렬은 끝까지 간다.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

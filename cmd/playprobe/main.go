package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"

    "play-probe/internal/cli"
)

func main() {
    _ = godotenv.Load()

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    err := cli.Execute(ctx)
    stop()
    if err != nil {
        os.Exit(1)
    }
}

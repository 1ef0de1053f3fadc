package main

import (
	"git-work-reporter-go/cmd"
)

// main はプログラムのエントリポイントです。
func main() {
	// 全ての CLI ロジックを cmd パッケージに委譲します。
	cmd.Execute()
}

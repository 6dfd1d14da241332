// faixa splits a banner image into A4 sheets and exports them as print-ready PDFs.
//
// Usage:
//
//	faixa export banner.png --width 300 --height 100 [options]
//	faixa grid --width 300 --height 100
//	faixa grid --sheets 4x3
//	faixa coverage banner.png --width 300 --height 100 --scale-percent 90
//	faixa layout banner.png --width 300 --height 100 -o distribuicao-folhas.png
//	faixa verify faixa_300x100_2024-05-17.zip
//
// Settings come from an optional YAML file (--config), FAIXA_* environment variables (a
// .env file in the working directory is loaded first) and flags, in that order.
package main

func main() {
	Execute()
}

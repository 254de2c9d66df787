package main

import (
	"flag"
	"log"

	"github.com/lilab-monash/protpeptigram/fasta"
)

func main() {
	path := flag.String("path", "", "Path to a FASTA file")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	f, err := fasta.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}

	j, residues := 0, 0
	for v := f.Read(); v != nil; v = f.Read() {
		j++
		residues += len(v.Seq)
	}
	if f.Err() != nil {
		log.Fatalln(f.Err())
	}

	log.Println(j, "proteins,", residues, "residues")
}

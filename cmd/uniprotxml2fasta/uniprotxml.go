package main

import "encoding/xml"

// UniProtXML mirrors the subset of the UniProtKB XML schema that FASTA export
// needs.
type UniProtXML struct {
	XMLName xml.Name       `xml:"uniprot"`
	Entries []UniProtEntry `xml:"entry"`
}

type UniProtEntry struct {
	Dataset   string   `xml:"dataset,attr"` // Swiss-Prot
	Accession []string `xml:"accession"`    // P01903
	Name      []string `xml:"name"`         // DRA_HUMAN
	Protein   struct {
		RecommendedName struct {
			FullName string `xml:"fullName"` // HLA class II histocompatibility antigen, DR alpha chain
		} `xml:"recommendedName"`
		// TrEMBL entries carry submittedName instead of recommendedName
		SubmittedName []struct {
			FullName string `xml:"fullName"`
		} `xml:"submittedName"`
	} `xml:"protein"`
	Organism struct {
		Names []OrganismName `xml:"name"`
	} `xml:"organism"`
	Sequence struct {
		Text   string `xml:",chardata"`
		Length string `xml:"length,attr"` // 254
	} `xml:"sequence"`
}

type OrganismName struct {
	Type string `xml:"type,attr"` // scientific
	Text string `xml:",chardata"` // Homo sapiens
}

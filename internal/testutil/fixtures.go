package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCSV is a ten-row excerpt shaped like the published launch dataset.
//
//	CCAFS LC-40   3 rows, outcomes 0 0 1, payloads 0 525 3170
//	VAFB SLC-4E   2 rows, outcomes 0 1,   payloads 500 9600
//	KSC LC-39A    3 rows, outcomes 1 1 0, payloads 2490 5300 3600
//	CCAFS SLC-40  2 rows, outcomes 1 1,   payloads 3669 4428
const SampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525,F9 v1.0  B0005,v1.0
3,CCAFS LC-40,1,3170,F9 v1.1,v1.1
4,VAFB SLC-4E,0,500,F9 v1.1  B1003,v1.1
5,VAFB SLC-4E,1,9600,F9 FT B1029.1,FT
6,KSC LC-39A,1,2490,F9 FT B1031.1,FT
7,KSC LC-39A,1,5300,F9 B4 B1040.1,B4
8,KSC LC-39A,0,3600,F9 FT B1030,FT
9,CCAFS SLC-40,1,3669,F9 FT B1035.2,FT
10,CCAFS SLC-40,1,4428,F9 B5 B1047.1,B5
`

// SampleSites lists the sites in SampleCSV in first-seen order.
var SampleSites = []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSampleCSV writes SampleCSV to a temp file and returns its path.
func WriteSampleCSV(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "spacex_launch_dash.csv", SampleCSV)
}

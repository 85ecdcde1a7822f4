package sse_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/sse"
)

var _ = Describe("Writer", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("frames JSON as a single data event", func() {
		w := sse.NewWriter(buf)
		Expect(w.WriteJSON(map[string]string{"type": "complete", "content": "done"})).To(Succeed())
		Expect(buf.String()).To(Equal(`data: {"content":"done","type":"complete"}` + "\n\n"))
	})

	It("splits multi-line data across data fields", func() {
		w := sse.NewWriter(buf)
		Expect(w.WriteData("a\nb")).To(Succeed())
		Expect(buf.String()).To(Equal("data: a\ndata: b\n\n"))
	})

	It("round-trips through the Reader", func() {
		w := sse.NewWriter(buf)
		Expect(w.WriteJSON(map[string]string{"report": "line one\nline two"})).To(Succeed())

		ev, err := sse.NewReader(buf).Next()
		Expect(err).NotTo(HaveOccurred())

		var got map[string]string
		Expect(json.Unmarshal([]byte(ev.Data), &got)).To(Succeed())
		Expect(got["report"]).To(Equal("line one\nline two"))
	})

	It("rejects values that cannot be encoded", func() {
		w := sse.NewWriter(buf)
		Expect(w.WriteJSON(make(chan int))).NotTo(Succeed())
		Expect(buf.Len()).To(BeZero())
	})
})

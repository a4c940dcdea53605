package container

import (
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/adam-bouafia/logsim/internal/codec"
	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/dictionary"
	"github.com/adam-bouafia/logsim/internal/template"
)

// entropyDictSampleSize caps the entropy-dictionary training sample to
// the first megabyte of column payloads.
const entropyDictSampleSize = 1 << 20

// entropyDictMinBytes is the minimum sample size below which training is
// considered to have failed; below it the entropy pass runs without a
// dictionary.
const entropyDictMinBytes = 4096

// Write serializes lines into a complete container as a single in-memory
// pass: the template extractor, column builders, and codec layer all run
// to completion before the entropy pass wraps the assembled body.
func Write(lines []string, opts Options, log logrus.FieldLogger) ([]byte, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	templates, assignment, err := template.Extract(lines, template.Config{
		MinSupport:          opts.MinSupport,
		AbsorptionThreshold:  opts.AbsorptionThreshold,
		TemplateCeiling:      opts.TemplateCeiling,
	}, log)
	if err != nil {
		if budget, ok := err.(*template.ErrTemplateBudgetExceeded); ok {
			return nil, wrapf(TemplateBudgetExceeded, "template_extractor", -1, err, "exceeded ceiling of %d templates", budget.Ceiling)
		}
		return nil, wrapf(MalformedSlot, "template_extractor", -1, err, "template extraction failed")
	}

	severityDict := dictionary.NewSeverityDictionary()
	pool := dictionary.NewMessagePool()

	var columnBytesAll []byte
	for _, t := range templates {
		set := column.Build(t, lines, assignment)
		for _, col := range set.Columns {
			if col == nil {
				continue
			}
			columnBytesAll = append(columnBytesAll, encodeColumn(col.FieldType, col, severityDict, pool)...)
		}
	}
	log.WithFields(logrus.Fields{"templates": len(templates), "lines": len(lines)}).Debug("container: columns encoded")

	templateTableBytes := encodeTemplateTable(templates)

	globalsBytes := append(dictionary.Encode(severityDict), dictionary.Encode(pool.Dict())...)

	ids := make([]uint64, len(assignment))
	for i, id := range assignment {
		ids[i] = uint64(id)
	}
	tidPayload := codec.EncodeRLE(ids)
	tidHeader := codec.PutUvarint(nil, uint64(len(ids)))
	tidBlock := codec.EncodeBlock(codec.TagRLEVarint, tidHeader, tidPayload)

	templatesOffset := uint64(0)
	globalsOffset := templatesOffset + uint64(len(templateTableBytes))
	tidstreamOffset := globalsOffset + uint64(len(globalsBytes))
	columnsOffset := tidstreamOffset + uint64(len(tidBlock))
	footerOffset := columnsOffset + uint64(len(columnBytesAll))

	bodyBeforeFooter := make([]byte, 0, footerOffset)
	bodyBeforeFooter = append(bodyBeforeFooter, templateTableBytes...)
	bodyBeforeFooter = append(bodyBeforeFooter, globalsBytes...)
	bodyBeforeFooter = append(bodyBeforeFooter, tidBlock...)
	bodyBeforeFooter = append(bodyBeforeFooter, columnBytesAll...)

	ft := footer{
		NLines:          uint64(len(lines)),
		NTemplates:      uint32(len(templates)),
		TemplatesOffset: templatesOffset,
		GlobalsOffset:   globalsOffset,
		TidstreamOffset: tidstreamOffset,
		ColumnsOffset:   columnsOffset,
		CRC32:           crc32.ChecksumIEEE(bodyBeforeFooter),
	}
	decodedBody := append(bodyBeforeFooter, encodeFooter(ft)...)

	compressed, flags, err := entropyEncode(decodedBody, columnBytesAll, opts, log)
	if err != nil {
		return nil, wrapf(EntropyDecodeFailed, "entropy_pass", -1, err, "entropy encode failed")
	}

	hdr := encodeHeader(header{Version: Version, Flags: flags, FooterOffset: footerOffset})
	return append(hdr, compressed...), nil
}

// entropyEncode wraps body with zstd as the final entropy pass. When
// opts.EntropyDictionary is set and sample (the raw column payload
// bytes, capped to entropyDictSampleSize) is large enough, the sample is
// prepended in the clear ahead of the zstd frame and used as a raw
// content dictionary, and FlagEntropyDictionary is set; otherwise the
// pass runs undictionaried. The dictionary must travel with the
// container in the clear since the reader has no other source for the
// exact bytes the encoder trained on.
func entropyEncode(body, sample []byte, opts Options, log logrus.FieldLogger) ([]byte, uint16, error) {
	level := zstd.EncoderLevelFromZstd(opts.ZstdLevel)
	var encOpts []zstd.EOption
	encOpts = append(encOpts, zstd.WithEncoderLevel(level))

	var flags uint16
	var dict []byte
	if opts.EntropyDictionary {
		if len(sample) > entropyDictSampleSize {
			sample = sample[:entropyDictSampleSize]
		}
		if len(sample) >= entropyDictMinBytes {
			dict = sample
			encOpts = append(encOpts, zstd.WithEncoderDictRaw(0, dict))
			flags |= FlagEntropyDictionary
		} else {
			log.Debug("container: entropy dictionary training skipped, insufficient sample bytes")
		}
	}

	enc, err := zstd.NewWriter(nil, encOpts...)
	if err != nil {
		return nil, 0, err
	}
	defer enc.Close()
	compressed := enc.EncodeAll(body, make([]byte, 0, len(body)))

	if dict == nil {
		return compressed, flags, nil
	}
	out := codec.PutUvarint(nil, uint64(len(dict)))
	out = append(out, dict...)
	out = append(out, compressed...)
	return out, flags, nil
}

// entropyDecode reverses entropyEncode: if flags carries
// FlagEntropyDictionary, the clear-text dictionary is read back out from
// the front of data before the zstd frame is decoded against it.
func entropyDecode(data []byte, flags uint16) ([]byte, error) {
	rest := data
	var dictOpts []zstd.DOption
	if flags&FlagEntropyDictionary != 0 {
		dictLen, r, err := codec.ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		if uint64(len(r)) < dictLen {
			return nil, codec.ErrVarintOverflow
		}
		dict := r[:dictLen]
		rest = r[dictLen:]
		dictOpts = append(dictOpts, zstd.WithDecoderDictRaw(0, dict))
	}

	dec, err := zstd.NewReader(nil, dictOpts...)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(rest, nil)
}

// WriteFile serializes lines and publishes the container atomically: the
// bytes are written to a temporary file in dir(path) and then moved into
// place with os.Rename, so no partially-written container is ever visible
// at path. This follows the teacher's rename-based atomic publish
// discipline, adapted here from its database-transaction commit to a
// filesystem rename commit.
func WriteFile(path string, lines []string, opts Options, log logrus.FieldLogger) error {
	data, err := Write(lines, opts, log)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	id, err := uuid.NewV4()
	if err != nil {
		return wrapf(EntropyDecodeFailed, "publish", -1, err, "failed to generate temp file id")
	}
	tmpPath := filepath.Join(dir, ".logsim-"+id.String()+".tmp")

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return wrapf(EntropyDecodeFailed, "publish", -1, err, "failed to write temp container file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return wrapf(EntropyDecodeFailed, "publish", -1, err, "failed to publish container file")
	}
	return nil
}

package frontmatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplit_DelimitedPreamble_SplitsPreambleAndBody(t *testing.T) {
	input := []byte("---\ndate: 2023-04-01T10:30:00Z\ntitle: Post\n---\n# Body\n")

	pre, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, []byte("date: 2023-04-01T10:30:00Z\ntitle: Post\n"), pre)
	require.Equal(t, []byte("# Body\n"), body)
}

func TestSplit_CRLF_SplitsPreambleAndBody(t *testing.T) {
	input := []byte("---\r\ndate: x\r\n---\r\nbody\r\n")

	pre, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, []byte("date: x\r\n"), pre)
	require.Equal(t, []byte("body\r\n"), body)
}

func TestSplit_TextBeforeFirstDelimiter_IsIgnored(t *testing.T) {
	input := []byte("intro\n---\ndate: d\n---\nbody")

	pre, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, []byte("date: d\n"), pre)
	require.Equal(t, []byte("body"), body)
}

func TestSplit_EmptyPreambleBlock_ReturnsEmptyPreamble(t *testing.T) {
	pre, body, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.Empty(t, pre)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_FewerThanTwoDelimiters_ReturnsMalformed(t *testing.T) {
	for _, input := range [][]byte{
		[]byte("---\ntitle: x\n"),
		[]byte("# Just a document\n"),
		nil,
	} {
		_, _, err := Split(input)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrMalformedPreamble))
	}
}

func TestParse_AllFields_ReturnsTypedPreamble(t *testing.T) {
	raw := []byte(`date: 2023-04-01T10:30:00-05:00
title: A post
tags: alpha, beta
hero_image: /img/hero.png
share_image: /img/share.png
author: Todd
description: Hand-written summary
`)

	p, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "A post", p.Title)
	require.Equal(t, TagList{"alpha", "beta"}, p.Tags)
	require.Equal(t, "/img/hero.png", p.HeroImage)
	require.Equal(t, "/img/share.png", p.ShareImage)
	require.Equal(t, "Todd", p.Author)
	require.Equal(t, "Hand-written summary", p.Description)
}

func TestParse_TagSequence_DecodesSameAsScalar(t *testing.T) {
	scalar, err := Parse([]byte("date: 2023-04-01T10:30:00Z\ntitle: x\ntags: alpha , beta beta,\n"))
	require.NoError(t, err)

	sequence, err := Parse([]byte("date: 2023-04-01T10:30:00Z\ntitle: x\ntags:\n  - alpha\n  - beta beta\n"))
	require.NoError(t, err)

	require.Equal(t, TagList{"alpha", "beta beta"}, scalar.Tags)
	require.Equal(t, scalar.Tags, sequence.Tags)
}

func TestParse_DuplicateTags_ArePreserved(t *testing.T) {
	p, err := Parse([]byte("date: 2023-04-01T10:30:00Z\ntitle: x\ntags: go, go\n"))
	require.NoError(t, err)
	require.Equal(t, TagList{"go", "go"}, p.Tags)
}

func TestParse_MissingTitle_ReturnsMissingFieldError(t *testing.T) {
	_, err := Parse([]byte("date: 2023-04-01T10:30:00Z\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingField))

	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	require.Equal(t, "title", mf.Field)
}

func TestParse_MissingDate_ReturnsMissingFieldError(t *testing.T) {
	_, err := Parse([]byte("title: x\n"))
	require.Error(t, err)

	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	require.Equal(t, "date", mf.Field)
}

func TestParse_InvalidYAML_ReturnsMalformed(t *testing.T) {
	_, err := Parse([]byte("title: [unclosed"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedPreamble))
}

func TestCreatedAt_RFC3339_PreservesZoneOffset(t *testing.T) {
	p := Preamble{Date: "2023-04-01T10:30:00-05:00"}

	ts, err := p.CreatedAt()
	require.NoError(t, err)
	// Round-trip keeps the same calendar date/time and offset.
	require.Equal(t, "2023-04-01T10:30:00-05:00", ts.Format(time.RFC3339))
	_, offset := ts.Zone()
	require.Equal(t, -5*60*60, offset)
}

func TestCreatedAt_UnparseableDate_ReturnsDateParseError(t *testing.T) {
	p := Preamble{Date: "April 1st, 2023"}

	_, err := p.CreatedAt()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadDate))

	var dpe *DateParseError
	require.True(t, errors.As(err, &dpe))
	require.Equal(t, "April 1st, 2023", dpe.Value)
}

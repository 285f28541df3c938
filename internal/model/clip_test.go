package model

import "testing"

func TestIsColorContent(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"#fff", true},
		{"#FFF", true},
		{"#ff8800", true},
		{"#AaBbCc", true},
		{"#ffff", false},
		{"#ff880", false},
		{"fff", false},
		{"#ggg", false},
		{" #fff", false},
		{"#fff ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsColorContent(tt.content); got != tt.want {
			t.Errorf("IsColorContent(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestNewTextClipDetectsColors(t *testing.T) {
	text := NewTextClip("", "hello world")
	if text.Type != TypeText || text.Name != "Text Clip" {
		t.Errorf("text capture: type=%s name=%q", text.Type, text.Name)
	}
	if text.ID == "" {
		t.Error("clip created without an id")
	}
	if text.LastCopiedAt == nil {
		t.Error("new clip should enter the recency list")
	}
	if text.FolderID != nil {
		t.Errorf("unfiled clip has folderId %v", *text.FolderID)
	}

	color := NewTextClip("f1", "#ff8800")
	if color.Type != TypeColor || color.Name != "Color Clip" {
		t.Errorf("color capture: type=%s name=%q", color.Type, color.Name)
	}
	if color.FolderID == nil || *color.FolderID != "f1" {
		t.Errorf("color capture folderId = %v, want f1", color.FolderID)
	}
}

func TestClipInFolder(t *testing.T) {
	fid := "f1"
	filed := Clip{FolderID: &fid}
	unfiled := Clip{}

	if !filed.InFolder("f1") {
		t.Error("filed clip not matched by its folder id")
	}
	if filed.InFolder("") || filed.InFolder("f2") {
		t.Error("filed clip matched the wrong scope")
	}
	if !unfiled.InFolder("") {
		t.Error("unfiled clip not matched by the empty scope")
	}
	if unfiled.InFolder("f1") {
		t.Error("unfiled clip matched a folder scope")
	}
}

func TestClipTypeValid(t *testing.T) {
	for _, typ := range []ClipType{TypeText, TypeColor, TypeImage} {
		if !typ.Valid() {
			t.Errorf("%s reported invalid", typ)
		}
	}
	for _, typ := range []ClipType{"", "video", "Text"} {
		if typ.Valid() {
			t.Errorf("%q reported valid", typ)
		}
	}
}

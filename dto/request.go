package dto

import "errors"

// FeedbackRequest reports user-observed accuracy for a pattern.
type FeedbackRequest struct {
	PatternKey string `json:"pattern_key" binding:"required"`
	Accurate   *bool  `json:"accurate" binding:"required"`
	Correction string `json:"correction,omitempty"`
}

func (r *FeedbackRequest) Validate() error {
	if r.PatternKey == "" {
		return errors.New("pattern_key is required")
	}
	if r.Accurate == nil {
		return errors.New("accurate is required")
	}
	return nil
}

// PatternRequest registers an extraction pattern at runtime.
type PatternRequest struct {
	Key        string `json:"key" binding:"required"`
	Expression string `json:"expression" binding:"required"`
}

func (r *PatternRequest) Validate() error {
	if r.Key == "" {
		return errors.New("key is required")
	}
	if r.Expression == "" {
		return errors.New("expression is required")
	}
	return nil
}

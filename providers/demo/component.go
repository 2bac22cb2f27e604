package demo

import "strings"

// componentTemplate is the fixed shape of every demo component. Placeholders are
// replaced with JSX-escaped text, so user input can never unbalance the brackets.
const componentTemplate = `import React, { useState } from 'react';
import { Box, Button, Card, CardContent, CircularProgress, Typography } from '@mui/material';
import { styled } from '@mui/material/styles';

interface __NAME__Props {
  onAction?: () => void;
  className?: string;
}

const StyledContainer = styled(Box)(({ theme }) => ({
  padding: theme.spacing(3),
  maxWidth: 1200,
  margin: '0 auto',
  [theme.breakpoints.down('sm')]: {
    padding: theme.spacing(2),
  },
}));

const __NAME__: React.FC<__NAME__Props> = ({ onAction, className }) => {
  const [loading, setLoading] = useState<boolean>(false);

  const handleAction = async (): Promise<void> => {
    setLoading(true);
    try {
      await Promise.resolve();
      onAction?.();
    } finally {
      setLoading(false);
    }
  };

  return (
    <StyledContainer className={className}>
      <Card elevation={2}>
        <CardContent>
          <Typography variant="h4" component="h1" gutterBottom>
            __TITLE__
          </Typography>
          <Typography variant="body1" color="text.secondary" paragraph>
            __KIND__ 유형의 데모 컴포넌트입니다.
          </Typography>
__CAPTION__          <Button variant="contained" onClick={handleAction} disabled={loading}>
            {loading ? <CircularProgress size={20} /> : '실행하기'}
          </Button>
        </CardContent>
      </Card>
    </StyledContainer>
  );
};

export default __NAME__;
`

const captionTemplate = `          <Typography variant="body2" color="text.secondary" paragraph>
            __TEXT__
          </Typography>
`

// RenderComponent produces the demo TSX source. Output depends only on its arguments.
// A non-empty caption adds one extra paragraph under the kind line.
func RenderComponent(name, description, kind, caption string) string {
	if kind == "" {
		kind = "component"
	}

	captionBlock := ""
	if caption != "" {
		captionBlock = strings.ReplaceAll(captionTemplate, "__TEXT__", escapeJSXText(caption))
	}

	return strings.NewReplacer(
		"__NAME__", name,
		"__TITLE__", escapeJSXText(description),
		"__KIND__", escapeJSXText(kind),
		"__CAPTION__", captionBlock,
	).Replace(componentTemplate)
}

var jsxTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
	"(", "&#40;",
	")", "&#41;",
	"[", "&#91;",
	"]", "&#93;",
	"\r", " ",
	"\n", " ",
)

// escapeJSXText makes s safe to place between JSX tags.
func escapeJSXText(s string) string {
	return jsxTextEscaper.Replace(strings.TrimSpace(s))
}

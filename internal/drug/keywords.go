package drug

// Risk keyword lists from the clinical interaction dataset. These are
// configuration data, not logic: the classifier walks DangerKeywords fully
// before CautionKeywords for each detail text, and editing the lists changes
// classification without touching code.

var DangerKeywords = []string{
	"사망",
	"흥분",
	"정신착란",
	"금기",
	"투여 금지",
	"독성 증가",
	"치명적인",
	"심각한",
	"유산 산성증",
	"고칼륨혈증",
	"심실성 부정맥",
	"위험성 증가",
	"위험 증가",
	"심장 부정맥",
	"QT간격 연장 위험 증가",
	"QT연장",
	"심부정맥",
	"중대한",
	"심장 모니터링",
	"병용금기",
	"Torsade de pointes 위험 증가",
	"위험이 증가함",
	"약물이상반응 발생 위험",
	"독성",
	"허혈",
	"혈관경련",
}

var CautionKeywords = []string{
	"치료 효과가 제한적",
	"중증의 위장관계 이상반응",
	"Alfuzosin 혈중농도 증가",
	"양쪽 약물 모두 혈장농도 상승 가능",
	"Amiodarone 혈중농도 증가",
	"혈중농도 증가",
	"횡문근융해와 같은 중증의 근육이상 보고",
	"혈장 농도 증가",
	"Finerenone 혈중농도의 현저한 증가가 예상됨",
}
